package infra

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/scheissegalo/myDU-MarketBot/internal/domain"
)

// Config holds the full bot configuration, loaded once at startup.
// Monetary values in the file are display currency; use the Quanta
// accessors everywhere else.
type Config struct {
	Remote struct {
		URL      string `yaml:"url"`
		Login    string `yaml:"login"`
		Password string `yaml:"password"`
	} `yaml:"remote"`

	Market struct {
		OperationMarkets     []uint64 `yaml:"operation_markets"`
		MarketTickSeconds    int      `yaml:"market_tick_seconds"`
		QueueTickSeconds     int      `yaml:"queue_tick_seconds"`
		MinBuyOrderPrice     int64    `yaml:"min_buy_order_price"`
		ResellEnabled        bool     `yaml:"resell_enabled"`
		MaxBuyPriceForResell int64    `yaml:"max_buy_price_for_resell"`
		ResellMarkup         string   `yaml:"resell_markup"`
		DaysBeforeExpiration int      `yaml:"days_before_expiration"`
		BotName              string   `yaml:"bot_name"`
	} `yaml:"market"`

	Data struct {
		Recipes   string `yaml:"recipes"`
		Resources string `yaml:"resources"`
		Markets   string `yaml:"markets"`
		Items     string `yaml:"items"`
		Journal   string `yaml:"journal"`
	} `yaml:"data"`

	Logging struct {
		Level string `yaml:"level"`
	} `yaml:"logging"`

	resellMarkup decimal.Decimal
}

// LoadConfig reads and validates the YAML configuration file, then applies
// environment overrides for credentials.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	overrideWithEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Market.MarketTickSeconds == 0 {
		c.Market.MarketTickSeconds = 60
	}
	if c.Market.QueueTickSeconds == 0 {
		c.Market.QueueTickSeconds = 5
	}
	if c.Market.ResellMarkup == "" {
		c.Market.ResellMarkup = "1.1"
	}
	if c.Data.Recipes == "" {
		c.Data.Recipes = "Data/recipes.json"
	}
	if c.Data.Resources == "" {
		c.Data.Resources = "Data/resources.json"
	}
	if c.Data.Markets == "" {
		c.Data.Markets = "Data/markets.json"
	}
	if c.Data.Items == "" {
		c.Data.Items = "items.yaml"
	}
}

// Validate checks configuration validity.
func (c *Config) Validate() error {
	if c.Remote.URL == "" || (!strings.HasPrefix(c.Remote.URL, "ws://") && !strings.HasPrefix(c.Remote.URL, "wss://")) {
		return fmt.Errorf("invalid remote WS URL: %q", c.Remote.URL)
	}
	if c.Market.MarketTickSeconds <= 0 {
		return fmt.Errorf("market tick must be positive")
	}
	if c.Market.QueueTickSeconds <= 0 {
		return fmt.Errorf("queue tick must be positive")
	}
	if c.Market.MinBuyOrderPrice < 0 {
		return fmt.Errorf("minimum buy order price must not be negative")
	}

	markup, err := decimal.NewFromString(c.Market.ResellMarkup)
	if err != nil {
		return fmt.Errorf("invalid resell markup %q: %w", c.Market.ResellMarkup, err)
	}
	if markup.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("resell markup must be positive")
	}
	c.resellMarkup = markup

	if c.Market.ResellEnabled {
		if c.Market.BotName == "" {
			return fmt.Errorf("bot name is required when reselling is enabled")
		}
		if c.Market.MaxBuyPriceForResell <= 0 {
			return fmt.Errorf("max buy price for resell must be positive when reselling is enabled")
		}
		if c.Market.DaysBeforeExpiration <= 0 {
			return fmt.Errorf("days before expiration must be positive when reselling is enabled")
		}
	}
	return nil
}

// MarketTick is the interval between market scan passes and between tiers
// within a pass.
func (c *Config) MarketTick() time.Duration {
	return time.Duration(c.Market.MarketTickSeconds) * time.Second
}

// QueueTick is the interval between crafting queue polls.
func (c *Config) QueueTick() time.Duration {
	return time.Duration(c.Market.QueueTickSeconds) * time.Second
}

// MinBuyOrderQuanta is the demand threshold in quanta: buy orders priced
// above it trigger crafting.
func (c *Config) MinBuyOrderQuanta() int64 {
	return domain.ToQuanta(decimal.NewFromInt(c.Market.MinBuyOrderPrice))
}

// MaxResellBuyQuanta is the highest listing price, in quanta, the flipper
// will pay.
func (c *Config) MaxResellBuyQuanta() int64 {
	return domain.ToQuanta(decimal.NewFromInt(c.Market.MaxBuyPriceForResell))
}

// ResellMarkup is the validated markup factor applied to acquisition prices.
func (c *Config) ResellMarkup() decimal.Decimal {
	return c.resellMarkup
}

// ExpirationWindow is how close to expiry a listing must be before the
// flipper considers it.
func (c *Config) ExpirationWindow() time.Duration {
	return time.Duration(c.Market.DaysBeforeExpiration) * 24 * time.Hour
}

func overrideWithEnv(cfg *Config) {
	if login := os.Getenv("MARKETBOT_LOGIN"); login != "" {
		cfg.Remote.Login = login
	}
	if pass := os.Getenv("MARKETBOT_PASSWORD"); pass != "" {
		cfg.Remote.Password = pass
	}
}

// knownMarket is one entry of the markets.json identity file.
type knownMarket struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// ResolveMarkets cross-checks the configured operation markets against the
// markets.json identity file. An empty list, or one containing 0, is
// populated with every known market; an unknown id is a fatal startup error.
func (c *Config) ResolveMarkets() error {
	data, err := os.ReadFile(c.Data.Markets)
	if err != nil {
		return fmt.Errorf("reading markets file: %w", err)
	}

	var known []knownMarket
	if err := json.Unmarshal(data, &known); err != nil {
		return fmt.Errorf("parsing markets file: %w", err)
	}

	knownIDs := make(map[uint64]struct{}, len(known))
	for _, m := range known {
		knownIDs[m.ID] = struct{}{}
	}

	useAll := len(c.Market.OperationMarkets) == 0
	for _, id := range c.Market.OperationMarkets {
		if id == 0 {
			useAll = true
			break
		}
	}

	if useAll {
		ids := make([]uint64, 0, len(known))
		for _, m := range known {
			ids = append(ids, m.ID)
		}
		c.Market.OperationMarkets = ids
		slog.Info("Populated operation markets from markets file", slog.Int("count", len(ids)))
		return nil
	}

	var invalid []uint64
	for _, id := range c.Market.OperationMarkets {
		if _, ok := knownIDs[id]; !ok {
			invalid = append(invalid, id)
		}
	}
	if len(invalid) > 0 {
		return fmt.Errorf("unknown operation markets: %v", invalid)
	}
	return nil
}
