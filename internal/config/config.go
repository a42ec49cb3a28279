package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Tokenizer  TokenizerConfig  `mapstructure:"tokenizer"`
	Normalizer NormalizerConfig `mapstructure:"normalizer"`
	Server     ServerConfig     `mapstructure:"server"`
	LogLevel   string           `mapstructure:"log_level"`
}

type TokenizerConfig struct {
	Lang              string   `mapstructure:"lang"`
	Escape            bool     `mapstructure:"escape"`
	HyphenSplitting   bool     `mapstructure:"hyphen_splitting"`
	Mode              string   `mapstructure:"mode"`
	PrefixDir         string   `mapstructure:"prefix_dir"`
	FallbackLang      string   `mapstructure:"fallback_lang"`
	ProtectWeb        bool     `mapstructure:"protect_web"`
	ProtectedPatterns []string `mapstructure:"protected_patterns"`
	Workers           int      `mapstructure:"workers"`
}

type NormalizerConfig struct {
	Penn               bool `mapstructure:"penn"`
	QuoteCommas        bool `mapstructure:"quote_commas"`
	Numbers            bool `mapstructure:"numbers"`
	UnicodePunct       bool `mapstructure:"unicode_punct"`
	RemoveControlChars bool `mapstructure:"remove_control_chars"`
	NFC                bool `mapstructure:"nfc"`
}

type ServerConfig struct {
	ListenAddr      string `mapstructure:"listen_addr"`
	MaxTextBytes    int    `mapstructure:"max_text_bytes"`
	Workers         int    `mapstructure:"workers"`
	RequestTimeout  int    `mapstructure:"request_timeout"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"`
}

type LoadOptions struct {
	Cmd        flagBinder
	ConfigFile string
	Defaults   Config
}

type flagBinder interface {
	Flags() *pflag.FlagSet
}

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = []struct {
	flag, key string
}{
	{"lang", "tokenizer.lang"},
	{"escape", "tokenizer.escape"},
	{"hyphen-splitting", "tokenizer.hyphen_splitting"},
	{"mode", "tokenizer.mode"},
	{"prefix-dir", "tokenizer.prefix_dir"},
	{"fallback-lang", "tokenizer.fallback_lang"},
	{"protect-web", "tokenizer.protect_web"},
	{"protected-pattern", "tokenizer.protected_patterns"},
	{"workers", "tokenizer.workers"},
	{"normalizer-penn", "normalizer.penn"},
	{"normalizer-quote-commas", "normalizer.quote_commas"},
	{"normalizer-numbers", "normalizer.numbers"},
	{"normalizer-unicode-punct", "normalizer.unicode_punct"},
	{"normalizer-remove-control-chars", "normalizer.remove_control_chars"},
	{"normalizer-nfc", "normalizer.nfc"},
	{"listen-addr", "server.listen_addr"},
	{"max-text-bytes", "server.max_text_bytes"},
	{"server-workers", "server.workers"},
	{"request-timeout", "server.request_timeout"},
	{"shutdown-timeout", "server.shutdown_timeout"},
	{"log-level", "log_level"},
}

func DefaultConfig() Config {
	return Config{
		Tokenizer: TokenizerConfig{
			Lang:            "en",
			Escape:          true,
			HyphenSplitting: true,
			Mode:            ModeMoses,
		},
		Normalizer: NormalizerConfig{
			Penn:         true,
			QuoteCommas:  true,
			Numbers:      true,
			UnicodePunct: true,
		},
		Server: ServerConfig{
			ListenAddr:      ":8080",
			MaxTextBytes:    65536,
			Workers:         4,
			RequestTimeout:  10,
			ShutdownTimeout: 30,
		},
		LogLevel: "info",
	}
}

func RegisterFlags(fs *pflag.FlagSet, defaults Config) {
	fs.String("lang", defaults.Tokenizer.Lang, "Language code of the input text")
	fs.Bool("escape", defaults.Tokenizer.Escape, "Escape reserved characters in tokens")
	fs.Bool("hyphen-splitting", defaults.Tokenizer.HyphenSplitting, "Split hyphens between alphanumerics into @-@")
	fs.String("mode", defaults.Tokenizer.Mode, "Tokenizer mode (moses|penn)")
	fs.String("prefix-dir", defaults.Tokenizer.PrefixDir, "Directory of nonbreaking_prefix.<lang> tables replacing the built-in ones")
	fs.String("fallback-lang", defaults.Tokenizer.FallbackLang, "Language whose rules are used for unknown language codes")
	fs.Bool("protect-web", defaults.Tokenizer.ProtectWeb, "Keep URLs and e-mail addresses as single tokens")
	fs.StringSlice("protected-pattern", defaults.Tokenizer.ProtectedPatterns, "Regular expression whose matches are kept as single tokens (repeatable)")
	fs.Int("workers", defaults.Tokenizer.Workers, "Parallel workers for batch tokenization (0 = GOMAXPROCS)")
	fs.Bool("normalizer-penn", defaults.Normalizer.Penn, "Normalizer: rewrite Penn quotes")
	fs.Bool("normalizer-quote-commas", defaults.Normalizer.QuoteCommas, "Normalizer: move commas and periods around quotes")
	fs.Bool("normalizer-numbers", defaults.Normalizer.Numbers, "Normalizer: rewrite digit-NBSP-digit to the digit separator")
	fs.Bool("normalizer-unicode-punct", defaults.Normalizer.UnicodePunct, "Normalizer: replace CJK and full-width punctuation")
	fs.Bool("normalizer-remove-control-chars", defaults.Normalizer.RemoveControlChars, "Normalizer: drop control characters")
	fs.Bool("normalizer-nfc", defaults.Normalizer.NFC, "Normalizer: compose the output to NFC")
	fs.String("listen-addr", defaults.Server.ListenAddr, "HTTP listen address")
	fs.Int("max-text-bytes", defaults.Server.MaxTextBytes, "Maximum request text size in bytes")
	fs.Int("server-workers", defaults.Server.Workers, "Maximum concurrent requests being tokenized")
	fs.Int("request-timeout", defaults.Server.RequestTimeout, "Seconds a request may wait for a worker")
	fs.Int("shutdown-timeout", defaults.Server.ShutdownTimeout, "Seconds to drain requests on shutdown")
	fs.String("log-level", defaults.LogLevel, "Log level (debug|info|warn|error)")
}

// Load resolves the configuration from, in increasing priority: defaults,
// the config file, MOSESTOK_* environment variables and explicitly set flags.
func Load(opts LoadOptions) (Config, error) {
	v := viper.New()

	setDefaults(v, opts.Defaults)
	if opts.Cmd != nil {
		if err := bindFlags(v, opts.Cmd.Flags()); err != nil {
			return Config{}, err
		}
	}

	v.SetEnvPrefix("MOSESTOK")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("mosestok")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	mode, err := NormalizeMode(cfg.Tokenizer.Mode)
	if err != nil {
		return Config{}, err
	}
	cfg.Tokenizer.Mode = mode

	return cfg, nil
}

// bindFlags binds every registered config flag present in fs to its key.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for _, fk := range flagKeys {
		f := fs.Lookup(fk.flag)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(fk.key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", fk.flag, err)
		}
	}
	return nil
}

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("tokenizer.lang", c.Tokenizer.Lang)
	v.SetDefault("tokenizer.escape", c.Tokenizer.Escape)
	v.SetDefault("tokenizer.hyphen_splitting", c.Tokenizer.HyphenSplitting)
	v.SetDefault("tokenizer.mode", c.Tokenizer.Mode)
	v.SetDefault("tokenizer.prefix_dir", c.Tokenizer.PrefixDir)
	v.SetDefault("tokenizer.fallback_lang", c.Tokenizer.FallbackLang)
	v.SetDefault("tokenizer.protect_web", c.Tokenizer.ProtectWeb)
	v.SetDefault("tokenizer.protected_patterns", c.Tokenizer.ProtectedPatterns)
	v.SetDefault("tokenizer.workers", c.Tokenizer.Workers)
	v.SetDefault("normalizer.penn", c.Normalizer.Penn)
	v.SetDefault("normalizer.quote_commas", c.Normalizer.QuoteCommas)
	v.SetDefault("normalizer.numbers", c.Normalizer.Numbers)
	v.SetDefault("normalizer.unicode_punct", c.Normalizer.UnicodePunct)
	v.SetDefault("normalizer.remove_control_chars", c.Normalizer.RemoveControlChars)
	v.SetDefault("normalizer.nfc", c.Normalizer.NFC)
	v.SetDefault("server.listen_addr", c.Server.ListenAddr)
	v.SetDefault("server.max_text_bytes", c.Server.MaxTextBytes)
	v.SetDefault("server.workers", c.Server.Workers)
	v.SetDefault("server.request_timeout", c.Server.RequestTimeout)
	v.SetDefault("server.shutdown_timeout", c.Server.ShutdownTimeout)
	v.SetDefault("log_level", c.LogLevel)
}
