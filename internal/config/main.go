package config

import (
	"io/ioutil"
	"time"

	"git.lost.host/meutraa/radial/internal/engine"
	"git.lost.host/meutraa/radial/internal/game"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"
	"gopkg.in/yaml.v3"
)

const Version = "0.3.0"

type Config struct {
	Directory   string
	ConfigFile  string
	Offset      time.Duration // Audio/input offset, positive when input lags
	Delay       time.Duration // Silence before the chart starts
	NoteSpeed   float64       // Seconds a note is visible before it is due
	Windows     game.Windows
	Keys        string // One key per control
	Device      string // Optional evdev keyboard for true key releases
	FramePeriod time.Duration
	Autoplay    bool
	Demo        bool
	List        bool
	Chart       int // Index into the sorted library
	Seed        int64
	Workers     int
	LogLevel    string
}

var Default = Config{
	Offset:      0,
	Delay:       1500 * time.Millisecond,
	NoteSpeed:   1.5,
	Windows:     game.DefaultWindows,
	Keys:        "dfjk",
	FramePeriod: 4 * time.Millisecond,
	Seed:        1,
	Workers:     4,
	LogLevel:    "info",
}

type fileWindows struct {
	Perfect string `yaml:"perfect"`
	Good    string `yaml:"good"`
	Bad     string `yaml:"bad"`
}

// file is the optional YAML configuration, flags still take precedence.
type file struct {
	Offset    string      `yaml:"offset"`
	Delay     string      `yaml:"delay"`
	NoteSpeed float64     `yaml:"note_speed"`
	Keys      string      `yaml:"keys"`
	Windows   fileWindows `yaml:"windows"`
	LogLevel  string      `yaml:"log_level"`
}

func durationOr(s string, fallback time.Duration) (time.Duration, error) {
	if s == "" {
		return fallback, nil
	}
	return time.ParseDuration(s)
}

// Load applies a YAML configuration file on top of c.
func (c *Config) Load(path string) error {
	data, err := ioutil.ReadFile(path)
	if nil != err {
		return errors.Wrap(err, "read config")
	}
	var f file
	if err := yaml.Unmarshal(data, &f); nil != err {
		return errors.Wrapf(err, "parse config %s", path)
	}

	durations := []struct {
		value  string
		target *time.Duration
	}{
		{f.Offset, &c.Offset},
		{f.Delay, &c.Delay},
		{f.Windows.Perfect, &c.Windows.Perfect},
		{f.Windows.Good, &c.Windows.Good},
		{f.Windows.Bad, &c.Windows.Bad},
	}
	for _, d := range durations {
		v, err := durationOr(d.value, *d.target)
		if nil != err {
			return errors.Wrapf(err, "parse config %s", path)
		}
		*d.target = v
	}
	if f.NoteSpeed > 0 {
		c.NoteSpeed = f.NoteSpeed
	}
	if f.Keys != "" {
		c.Keys = f.Keys
	}
	if f.LogLevel != "" {
		c.LogLevel = f.LogLevel
	}
	return nil
}

func newApp(c *Config) *kingpin.Application {
	app := kingpin.New("radial", "Eight lane radial rhythm game")
	app.Version(Version)
	app.Arg("directory", "Directory of chart containers").StringVar(&c.Directory)
	app.Flag("config", "YAML configuration file").Short('c').StringVar(&c.ConfigFile)
	app.Flag("offset", "Audio/input offset").Default(c.Offset.String()).Short('o').DurationVar(&c.Offset)
	app.Flag("delay", "Start delay").Default(c.Delay.String()).Short('d').DurationVar(&c.Delay)
	app.Flag("note-speed", "Seconds a note is visible before it is due").Default(formatFloat(c.NoteSpeed)).Short('s').Float64Var(&c.NoteSpeed)
	app.Flag("perfect", "Perfect timing window").Default(c.Windows.Perfect.String()).DurationVar(&c.Windows.Perfect)
	app.Flag("good", "Good timing window").Default(c.Windows.Good.String()).DurationVar(&c.Windows.Good)
	app.Flag("bad", "Late bad timing window, also the miss threshold").Default(c.Windows.Bad.String()).DurationVar(&c.Windows.Bad)
	app.Flag("keys", "Keys for the four controls").Default(c.Keys).Short('k').StringVar(&c.Keys)
	app.Flag("device", "evdev keyboard device for key releases").StringVar(&c.Device)
	app.Flag("frame-period", "Render frame period").Default(c.FramePeriod.String()).Short('p').DurationVar(&c.FramePeriod)
	app.Flag("autoplay", "Play the chart perfectly").BoolVar(&c.Autoplay)
	app.Flag("demo", "Play a generated chart").BoolVar(&c.Demo)
	app.Flag("list", "List the charts in the directory and exit").Short('l').BoolVar(&c.List)
	app.Flag("chart", "Index of the chart to play").Default(formatInt(int64(c.Chart))).IntVar(&c.Chart)
	app.Flag("seed", "Seed of the generated chart").Default(formatInt(c.Seed)).Int64Var(&c.Seed)
	app.Flag("workers", "Charts decoded in parallel").Default(formatInt(int64(c.Workers))).IntVar(&c.Workers)
	app.Flag("log-level", "Log level").Default(c.LogLevel).StringVar(&c.LogLevel)
	return app
}

// Parse reads the configuration from command line arguments. A config file
// named by --config supplies the defaults the flags override.
func Parse(args []string) (*Config, error) {
	c := Default
	if _, err := newApp(&c).Parse(args); nil != err {
		return nil, err
	}
	if c.ConfigFile != "" {
		withFile := Default
		if err := withFile.Load(c.ConfigFile); nil != err {
			return nil, err
		}
		c = withFile
		if _, err := newApp(&c).Parse(args); nil != err {
			return nil, err
		}
	}
	if err := c.Validate(); nil != err {
		return nil, err
	}
	return &c, nil
}

func (c *Config) Validate() error {
	w := c.Windows
	if w.Perfect <= 0 || w.Perfect > w.Good || w.Good > w.Bad {
		return errors.Errorf("timing windows must satisfy 0 < perfect <= good <= bad, got %v %v %v", w.Perfect, w.Good, w.Bad)
	}
	keys := []rune(c.Keys)
	if len(keys) != game.ControlCount {
		return errors.Errorf("expected %d keys, got %q", game.ControlCount, c.Keys)
	}
	seen := map[rune]bool{}
	for _, k := range keys {
		if seen[k] {
			return errors.Errorf("key %q bound twice", k)
		}
		seen[k] = true
	}
	if c.NoteSpeed <= 0 {
		return errors.Errorf("note speed must be positive, got %v", c.NoteSpeed)
	}
	if c.Chart < 0 {
		return errors.Errorf("chart index must not be negative, got %d", c.Chart)
	}
	if c.Workers < 1 {
		c.Workers = 1
	}
	if !c.Demo && c.Directory == "" {
		return errors.New("a chart directory is required unless --demo is given")
	}
	return nil
}

// KeyControl returns the control bound to r, or -1.
func (c *Config) KeyControl(r rune) int {
	for i, k := range []rune(c.Keys) {
		if r == k {
			return i
		}
	}
	return -1
}

func (c *Config) Engine() engine.Config {
	return engine.Config{
		Windows:    c.Windows,
		LookAhead:  time.Duration(c.NoteSpeed * float64(time.Second)),
		JackWindow: engine.DefaultConfig.JackWindow,
	}
}

func (c *Config) Logger() (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(c.LogLevel)
	if nil != err {
		return nil, err
	}
	log := logrus.New()
	log.SetLevel(level)
	return log, nil
}
