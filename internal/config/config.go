package config

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// TrainerConfig holds the word2vec hyper-parameters.
type TrainerConfig struct {
	Dim      int     `yaml:"dim"`
	Window   int     `yaml:"window"`
	Negative int     `yaml:"negative"`
	Epochs   int     `yaml:"epochs"`
	Alpha    float64 `yaml:"alpha"`
	MinAlpha float64 `yaml:"min_alpha"`
	Sample   float64 `yaml:"sample"`
	Seed     int64   `yaml:"seed"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Corpora        []string      `yaml:"corpora"`
	CorpusDir      string        `yaml:"corpus_dir"`
	OutputDir      string        `yaml:"output_dir"`
	MinCount       int           `yaml:"min_count"`
	ContentTags    []string      `yaml:"content_tags"`
	ProperNounTags []string      `yaml:"proper_noun_tags"`
	ExtraStopwords []string      `yaml:"extra_stopwords"`
	Segmenter      string        `yaml:"segmenter"`
	Tokenizer      string        `yaml:"tokenizer"`
	SkipFailed     bool          `yaml:"skip_failed"`
	Trainer        TrainerConfig `yaml:"trainer"`
	LogLevel       string        `yaml:"log_level"`
}

// DefaultMinCount is the frequency floor applied by the trainer's default rule.
const DefaultMinCount = 15

var (
	defaultCorpora = []string{"JohnGalsworthy", "WilliamShakespeare", "WinstonChurchill", "BenjaminFranklin", "MarkTwain"}

	// DefaultContentTags are the Penn Treebank tags of meaning-bearing words.
	DefaultContentTags = []string{
		"JJ", "JJR", "JJS",
		"NN", "NNP", "NNPS", "NNS",
		"RB", "RBR", "RBS",
		"UH",
		"VB", "VBD", "VBG", "VBN", "VBP", "VBZ",
	}

	// DefaultProperNounTags are exempt from lowercasing.
	DefaultProperNounTags = []string{"NNP", "NNPS"}

	// DefaultExtraStopwords holds lemmatizer artifacts that are never useful
	// ("was" lemmatized as a noun).
	DefaultExtraStopwords = []string{"wa"}
)

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := defaultConfig()
			return cfg, nil
		}
		return nil, errors.Wrapf(err, "read config %s", path)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}
	return cfg, nil
}

// Parse decodes YAML config data and fills unset fields with defaults.
func Parse(data []byte) (*AppConfig, error) {
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./corpus2vec.yaml first, then ~/.config/corpus2vec/config.yaml.
// If neither exists, it writes defaults to ~/.config/corpus2vec/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "corpus2vec.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate reports the first configuration value the pipeline cannot run with.
func (c *AppConfig) Validate() error {
	switch {
	case len(c.Corpora) == 0:
		return errors.New("config: no corpora configured")
	case c.MinCount < 1:
		return errors.Errorf("config: min_count must be >= 1, got %d", c.MinCount)
	case len(c.ContentTags) == 0:
		return errors.New("config: content_tags is empty")
	case c.Trainer.Dim <= 0:
		return errors.Errorf("config: trainer.dim must be positive, got %d", c.Trainer.Dim)
	case c.Trainer.Window <= 0:
		return errors.Errorf("config: trainer.window must be positive, got %d", c.Trainer.Window)
	case c.Trainer.Epochs <= 0:
		return errors.Errorf("config: trainer.epochs must be positive, got %d", c.Trainer.Epochs)
	case c.Trainer.Negative < 0:
		return errors.Errorf("config: trainer.negative must not be negative, got %d", c.Trainer.Negative)
	}
	switch c.Segmenter {
	case "prose", "regexp":
	default:
		return errors.Errorf("config: unknown segmenter %q", c.Segmenter)
	}
	switch c.Tokenizer {
	case "prose", "regexp":
	default:
		return errors.Errorf("config: unknown tokenizer %q", c.Tokenizer)
	}
	return nil
}

// CorpusPath returns <corpus_dir>/<name>.txt.
func (c *AppConfig) CorpusPath(name string) string {
	return filepath.Join(c.CorpusDir, name+".txt")
}

// ModelPath returns <output_dir>/<name>.bin.
func (c *AppConfig) ModelPath(name string) string {
	return filepath.Join(c.OutputDir, name+".bin")
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "corpus2vec", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{
		Corpora:        append([]string(nil), defaultCorpora...),
		ExtraStopwords: append([]string(nil), DefaultExtraStopwords...),
	}
	applyConfigDefaults(cfg)
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.CorpusDir == "" {
		cfg.CorpusDir = "Corpuses"
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "."
	}
	if cfg.MinCount == 0 {
		cfg.MinCount = DefaultMinCount
	}
	if len(cfg.ContentTags) == 0 {
		cfg.ContentTags = append([]string(nil), DefaultContentTags...)
	}
	if len(cfg.ProperNounTags) == 0 {
		cfg.ProperNounTags = append([]string(nil), DefaultProperNounTags...)
	}
	if cfg.ExtraStopwords == nil {
		cfg.ExtraStopwords = append([]string(nil), DefaultExtraStopwords...)
	}
	if cfg.Segmenter == "" {
		cfg.Segmenter = "prose"
	}
	if cfg.Tokenizer == "" {
		cfg.Tokenizer = "prose"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	t := &cfg.Trainer
	if t.Dim == 0 {
		t.Dim = 100
	}
	if t.Window == 0 {
		t.Window = 5
	}
	if t.Negative == 0 {
		t.Negative = 5
	}
	if t.Epochs == 0 {
		t.Epochs = 5
	}
	if t.Alpha == 0 {
		t.Alpha = 0.025
	}
	if t.MinAlpha == 0 {
		t.MinAlpha = 0.0001
	}
	if t.Sample == 0 {
		t.Sample = 1e-3
	}
	if t.Seed == 0 {
		t.Seed = 1
	}
}
