// Package seed loads YAML fixtures into the booking and trivia tables.
package seed

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/iliyamo/fyyur-trivia/internal/database"
	"github.com/iliyamo/fyyur-trivia/internal/model"
	"github.com/iliyamo/fyyur-trivia/internal/repository"
)

//go:embed fixtures.yaml
var defaultFixtures []byte

// Fixtures is the YAML document.  Shows and questions point at their
// parents by key rather than by id.
type Fixtures struct {
	Venues     []Venue    `yaml:"venues"`
	Artists    []Artist   `yaml:"artists"`
	Shows      []Show     `yaml:"shows"`
	Categories []Category `yaml:"categories"`
	Questions  []Question `yaml:"questions"`
}

type Venue struct {
	Key          string   `yaml:"key"`
	Name         string   `yaml:"name"`
	City         string   `yaml:"city"`
	State        string   `yaml:"state"`
	Address      string   `yaml:"address"`
	Phone        string   `yaml:"phone"`
	ImageLink    string   `yaml:"image_link"`
	FacebookLink string   `yaml:"facebook_link"`
	Genres       []string `yaml:"genres"`
}

type Artist struct {
	Key          string   `yaml:"key"`
	Name         string   `yaml:"name"`
	City         string   `yaml:"city"`
	State        string   `yaml:"state"`
	Phone        string   `yaml:"phone"`
	ImageLink    string   `yaml:"image_link"`
	FacebookLink string   `yaml:"facebook_link"`
	Genres       []string `yaml:"genres"`
}

type Show struct {
	Venue     string `yaml:"venue"`
	Artist    string `yaml:"artist"`
	StartTime string `yaml:"start_time"`
}

type Category struct {
	Key  string `yaml:"key"`
	Type string `yaml:"type"`
}

type Question struct {
	Category   string `yaml:"category"`
	Question   string `yaml:"question"`
	Answer     string `yaml:"answer"`
	Difficulty int    `yaml:"difficulty"`
}

// IDs maps fixture keys to the ids the database assigned.
type IDs struct {
	Venues     map[string]int64
	Artists    map[string]int64
	Categories map[string]int64
}

// Default returns the bundled fixtures.
func Default() (Fixtures, error) {
	var f Fixtures
	if err := yaml.Unmarshal(defaultFixtures, &f); err != nil {
		return Fixtures{}, fmt.Errorf("bundled fixtures: %w", err)
	}
	return f, nil
}

// Decode reads fixtures from r.  Unknown keys are rejected.
func Decode(r io.Reader) (Fixtures, error) {
	var f Fixtures
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return Fixtures{}, err
	}
	return f, nil
}

// LoadFile reads fixtures from path.
func LoadFile(path string) (Fixtures, error) {
	fh, err := os.Open(path)
	if err != nil {
		return Fixtures{}, err
	}
	defer fh.Close()
	return Decode(fh)
}

// Apply inserts f in one transaction.  A show or question that names an
// unknown key aborts the whole load.
func Apply(ctx context.Context, db *sql.DB, f Fixtures) (IDs, error) {
	ids := IDs{
		Venues:     map[string]int64{},
		Artists:    map[string]int64{},
		Categories: map[string]int64{},
	}
	err := database.WithTx(ctx, db, func(tx *sql.Tx) error {
		venues := repository.NewVenueRepo(db).WithTx(tx)
		artists := repository.NewArtistRepo(db).WithTx(tx)
		shows := repository.NewShowRepo(db).WithTx(tx)
		categories := repository.NewCategoryRepo(tx)
		questions := repository.NewQuestionRepo(db).WithTx(tx)

		for _, fv := range f.Venues {
			v := model.Venue{Name: fv.Name, City: fv.City, State: fv.State, Address: fv.Address,
				Phone: fv.Phone, ImageLink: fv.ImageLink, FacebookLink: fv.FacebookLink, Genres: fv.Genres}
			if err := venues.Create(ctx, &v); err != nil {
				return fmt.Errorf("venue %q: %w", fv.Key, err)
			}
			ids.Venues[fv.Key] = v.ID
		}
		for _, fa := range f.Artists {
			a := model.Artist{Name: fa.Name, City: fa.City, State: fa.State,
				Phone: fa.Phone, ImageLink: fa.ImageLink, FacebookLink: fa.FacebookLink, Genres: fa.Genres}
			if err := artists.Create(ctx, &a); err != nil {
				return fmt.Errorf("artist %q: %w", fa.Key, err)
			}
			ids.Artists[fa.Key] = a.ID
		}
		for i, fs := range f.Shows {
			vid, ok := ids.Venues[fs.Venue]
			if !ok {
				return fmt.Errorf("show %d: unknown venue %q", i, fs.Venue)
			}
			aid, ok := ids.Artists[fs.Artist]
			if !ok {
				return fmt.Errorf("show %d: unknown artist %q", i, fs.Artist)
			}
			if err := shows.Create(ctx, &model.Show{VenueID: vid, ArtistID: aid, StartTime: fs.StartTime}); err != nil {
				return fmt.Errorf("show %d: %w", i, err)
			}
		}
		for _, fc := range f.Categories {
			c := model.Category{Type: fc.Type}
			if err := categories.Create(ctx, &c); err != nil {
				return fmt.Errorf("category %q: %w", fc.Key, err)
			}
			ids.Categories[fc.Key] = c.ID
		}
		for i, fq := range f.Questions {
			cid, ok := ids.Categories[fq.Category]
			if !ok {
				return fmt.Errorf("question %d: unknown category %q", i, fq.Category)
			}
			q := model.Question{Question: fq.Question, Answer: fq.Answer, Category: cid, Difficulty: fq.Difficulty}
			if err := questions.Create(ctx, &q); err != nil {
				return fmt.Errorf("question %d: %w", i, err)
			}
		}
		return nil
	})
	if err != nil {
		return IDs{}, err
	}
	return ids, nil
}
