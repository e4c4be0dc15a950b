package insertrecords

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/travigo/railresched/pkg/timetable"
	"gopkg.in/yaml.v3"
)

const DefaultDirectory = "data/insert-records/"

// Decode reads every YAML document in r
func Decode(r io.Reader) ([]InsertDefinition, error) {
	decoder := yaml.NewDecoder(r)

	var definitions []InsertDefinition
	for {
		var insertDefinition InsertDefinition
		err := decoder.Decode(&insertDefinition)
		if errors.Is(err, io.EOF) {
			return definitions, nil
		} else if err != nil {
			return nil, err
		}

		definitions = append(definitions, insertDefinition)
	}
}

// Insert upserts every record found in the YAML files under directory and returns how many were applied
func Insert(ctx context.Context, service *timetable.Service, directory string) (int, error) {
	applied := 0

	err := filepath.Walk(directory,
		func(path string, fileInfo os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if fileInfo.IsDir() {
				return nil
			}

			log.Debug().Str("path", path).Msg("Loading insert-record file")

			file, err := os.Open(path)
			if err != nil {
				return err
			}
			defer file.Close()

			definitions, err := Decode(file)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			for _, definition := range definitions {
				if err := definition.Upsert(ctx, service); err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				applied++
			}

			return nil
		})

	return applied, err
}
