package config

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/rdmup/rdmup/internal/duration"
	"github.com/rdmup/rdmup/pkg/client"
	"github.com/rdmup/rdmup/pkg/uploader"
)

// TokenEnv is the environment variable (and .env key) the API token is
// read from when the flag is not set.
const TokenEnv = "INVENIORDM_TOKEN"

type UploadCmdConfig struct {
	System       string        `mapstructure:"system"`
	Token        string        `mapstructure:"token"`
	Title        string        `mapstructure:"title"`
	Files        string        `mapstructure:"files"`
	Description  string        `mapstructure:"description"`
	Keywords     []string      `mapstructure:"keyword"`
	MetadataFile string        `mapstructure:"metadata-file"`
	ZipDirectory bool          `mapstructure:"zip-directory"`
	PartSize     int64         `mapstructure:"part-size"`
	APITimeout   time.Duration `mapstructure:"api-timeout"`
	PartTimeout  time.Duration `mapstructure:"part-timeout"`
	LogLevel     string        `mapstructure:"log-level"`
	LogFile      string        `mapstructure:"log-file"`
}

// Validate checks the options that have no usable default.
func (c *UploadCmdConfig) Validate() error {
	var missing []string
	if c.Title == "" && c.MetadataFile == "" {
		missing = append(missing, "--title")
	}
	if c.Files == "" {
		missing = append(missing, "--files")
	}
	if c.System == "" {
		missing = append(missing, "--system")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required option(s): %s", strings.Join(missing, ", "))
	}
	if _, ok := Systems[strings.ToLower(c.System)]; !ok {
		return fmt.Errorf("unknown system %q, choose one of: %s", c.System, strings.Join(SystemNames(), ", "))
	}
	if c.PartSize <= 0 {
		return fmt.Errorf("part size must be positive, got %d", c.PartSize)
	}
	return nil
}

type ConfigLoader struct {
	v *viper.Viper
}

func NewConfigLoader() *ConfigLoader {
	return &ConfigLoader{
		v: viper.New(),
	}
}

func StringToDurationHook() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() != reflect.String {
			return data, nil
		}
		if t != reflect.TypeOf(time.Duration(0)) {
			return data, nil
		}
		str, ok := data.(string)
		if !ok {
			return data, nil
		}
		return duration.ParseDuration(str)
	}
}

// Load resolves settings in ascending precedence: config file, .env
// file, environment, flags.
func (cl *ConfigLoader) Load(cmd *cobra.Command, cfg interface{}) error {
	// .env values become plain environment variables, visible to the
	// env bindings below; existing variables win.
	godotenv.Load()

	cl.v.SetConfigType("toml")
	if cfgFile := cmd.Flags().Lookup("config").Value.String(); cfgFile != "" {
		cl.v.SetConfigFile(cfgFile)
		if err := cl.v.ReadInConfig(); err != nil {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	cl.v.SetEnvPrefix("rdmup")
	cl.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	cl.v.AutomaticEnv()
	if err := cl.v.BindEnv("token", TokenEnv, "RDMUP_TOKEN"); err != nil {
		return err
	}

	if err := cl.v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("error binding flags: %w", err)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			StringToDurationHook(),
		),
		WeaklyTypedInput: true,
		Result:           cfg,
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := decoder.Decode(cl.v.AllSettings()); err != nil {
		return fmt.Errorf("failed to decode config: %w", err)
	}
	return nil
}

func AddUploadFlags(flags *pflag.FlagSet, cfg *UploadCmdConfig) {
	flags.StringP("config", "c", "", "Config file path (TOML)")

	flags.StringVar(&cfg.System, "system", "", fmt.Sprintf("Target platform: %s", strings.Join(SystemNames(), ", ")))
	flags.StringVar(&cfg.Token, "token", "", "API token (or "+TokenEnv+" env var / .env entry)")
	flags.StringVar(&cfg.Title, "title", "", "Title of the draft record")
	flags.StringVar(&cfg.Files, "files", "", "Path to the file or directory to upload")
	flags.StringVar(&cfg.Description, "description", "", "Description of the dataset")
	flags.StringArrayVar(&cfg.Keywords, "keyword", nil, "Keyword/subject (repeatable)")
	flags.StringVar(&cfg.MetadataFile, "metadata-file", "", "JSON or YAML file with record metadata")
	flags.BoolVar(&cfg.ZipDirectory, "zip-directory", false, "Zip the directory and upload the archive instead of individual files")
	flags.Int64Var(&cfg.PartSize, "part-size", uploader.DefaultPartSize, "Multipart upload part size in bytes")
	duration.DurationVar(flags, &cfg.APITimeout, "api-timeout", client.DefaultAPITimeout, "Timeout for repository API requests")
	duration.DurationVar(flags, &cfg.PartTimeout, "part-timeout", client.DefaultPartTimeout, "Timeout for a single part upload")
	flags.StringVar(&cfg.LogLevel, "log-level", "info", "Logging level")
	flags.StringVar(&cfg.LogFile, "log-file", "", "Logging file path")
}
