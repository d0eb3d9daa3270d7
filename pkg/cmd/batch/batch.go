package batch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/igolaizola/musicprompt/pkg/cmd/output"
	"github.com/igolaizola/musicprompt/pkg/prompt"
	"github.com/igolaizola/musicprompt/pkg/storage"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Debug  bool
	DBType string
	DBConn string
	Limit  int
	Input  string
	Output string
	Strict bool

	// Save stores each prompt for User.
	Save bool
	User string
}

// record is a csv row. List columns hold values separated by semicolons.
type record struct {
	Title            string `csv:"title"`
	Subject          string `csv:"subject"`
	GenresPrimary    string `csv:"genres_primary"`
	GenresElectronic string `csv:"genres_electronic"`
	Mood             string `csv:"mood"`
	TempoBPM         string `csv:"tempo_bpm"`
	KeyScale         string `csv:"key_scale"`
	Energy           string `csv:"energy"`
	Beat             string `csv:"beat"`
	Bass             string `csv:"bass"`
	Instruments      string `csv:"instruments"`
	GrooveSwing      string `csv:"groove_swing"`
	VocalGender      string `csv:"vocal_gender"`
	VocalDelivery    string `csv:"vocal_delivery"`
	Era              string `csv:"era"`
	MasterNotes      string `csv:"master_notes"`
	GeneralFreeform  string `csv:"general_freeform"`
	Length           string `csv:"length"`
	WeirdnessLevel   string `csv:"weirdness_level"`
}

func (r *record) item() *item {
	return &item{
		Title: r.Title,
		Data: prompt.Data{
			Subject:          r.Subject,
			GenresPrimary:    split(r.GenresPrimary),
			GenresElectronic: split(r.GenresElectronic),
			Mood:             split(r.Mood),
			TempoBPM:         r.TempoBPM,
			KeyScale:         r.KeyScale,
			Energy:           r.Energy,
			Beat:             split(r.Beat),
			Bass:             split(r.Bass),
			Instruments:      split(r.Instruments),
			GrooveSwing:      r.GrooveSwing,
			VocalGender:      r.VocalGender,
			VocalDelivery:    r.VocalDelivery,
			Era:              r.Era,
			MasterNotes:      r.MasterNotes,
			GeneralFreeform:  r.GeneralFreeform,
			Length:           r.Length,
			WeirdnessLevel:   r.WeirdnessLevel,
		},
	}
}

func split(s string) []string {
	var vs []string
	for _, v := range strings.Split(s, ";") {
		if v = strings.TrimSpace(v); v != "" {
			vs = append(vs, v)
		}
	}
	return vs
}

// item is a json or yaml entry: the record fields plus an optional title.
type item struct {
	Title       string `json:"title,omitempty" yaml:"title,omitempty"`
	prompt.Data `yaml:",inline"`
}

type result struct {
	Title  string `json:"title,omitempty" yaml:"title,omitempty"`
	Prompt string `json:"prompt" yaml:"prompt"`
	ID     string `json:"id,omitempty" yaml:"id,omitempty"`
}

// Run formats every record of the input file and optionally saves the
// prompts.
func Run(ctx context.Context, cfg *Config) error {
	return run(ctx, cfg, os.Stdout)
}

func run(ctx context.Context, cfg *Config, w io.Writer) error {
	var count int
	log.Println("batch: started")
	defer func() {
		log.Printf("batch: ended (%d)\n", count)
	}()

	debug := func(format string, args ...interface{}) {
		if !cfg.Debug {
			return
		}
		format += "\n"
		log.Printf(format, args...)
	}

	items, err := load(cfg.Input)
	if err != nil {
		return fmt.Errorf("batch: %w", err)
	}

	var store *storage.Store
	if cfg.Save {
		if cfg.User == "" {
			return fmt.Errorf("batch: user is required to save prompts")
		}
		store, err = storage.New(cfg.DBType, cfg.DBConn, cfg.Debug)
		if err != nil {
			return fmt.Errorf("batch: couldn't create orm store: %w", err)
		}
		if err := store.Start(ctx); err != nil {
			return fmt.Errorf("batch: couldn't start orm store: %w", err)
		}
		defer func() { _ = store.Stop() }()
		if _, err := store.GetUser(ctx, cfg.User); err != nil {
			return fmt.Errorf("batch: couldn't get user %s: %w", cfg.User, err)
		}
	}

	var results []*result
	for i, it := range items {
		if cfg.Limit > 0 && count >= cfg.Limit {
			break
		}
		js, _ := json.Marshal(it)
		debug("batch: %s", string(js))
		if cfg.Strict {
			if err := it.Data.Validate(); err != nil {
				return fmt.Errorf("batch: record %d: %w", i+1, err)
			}
		}
		r := &result{Title: it.Title, Prompt: prompt.Format(it.Data)}
		if store != nil {
			title := it.Title
			if title == "" {
				title = it.Data.Subject
			}
			data, err := json.Marshal(it.Data)
			if err != nil {
				return fmt.Errorf("batch: couldn't marshal record %d: %w", i+1, err)
			}
			p := &storage.Prompt{
				UserID: cfg.User,
				Title:  title,
				Data:   string(data),
				Text:   r.Prompt,
			}
			if err := store.SetPrompt(ctx, p); err != nil {
				return fmt.Errorf("batch: couldn't save prompt: %w", err)
			}
			r.ID = p.ID
		}
		results = append(results, r)
		count++
	}

	if cfg.Output == "" || cfg.Output == "text" {
		for _, r := range results {
			if _, err := fmt.Fprintln(w, r.Prompt); err != nil {
				return err
			}
		}
		return nil
	}
	return output.Write(w, cfg.Output, results)
}

// load reads records from a csv, json or yaml file.
func load(path string) ([]*item, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("couldn't read input file: %w", err)
	}
	var items []*item
	switch ext := filepath.Ext(path); ext {
	case ".json":
		if err := json.Unmarshal(b, &items); err != nil {
			return nil, fmt.Errorf("couldn't unmarshal items: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &items); err != nil {
			return nil, fmt.Errorf("couldn't unmarshal items: %w", err)
		}
	case ".csv":
		var rs []*record
		if err := gocsv.UnmarshalBytes(b, &rs); err != nil {
			return nil, fmt.Errorf("couldn't unmarshal items: %w", err)
		}
		for _, r := range rs {
			items = append(items, r.item())
		}
	default:
		return nil, fmt.Errorf("unsupported input format: %s", ext)
	}
	return items, nil
}
