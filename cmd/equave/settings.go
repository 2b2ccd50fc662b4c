package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"reflect"
	"strconv"
)

const defaultSettingsPath = "config/settings.csv"

type settings struct {
	BendSemitones    float64
	LogLevel         string
	ReferenceFreq    float64
	RegistryCapacity int
	ScaleLibrary     string
	TicksPerStep     int
	Velocity         int
}

func defaultSettings() *settings {
	return &settings{
		BendSemitones:    2,
		LogLevel:         "warn",
		ReferenceFreq:    261.6255653005986,
		RegistryCapacity: 64,
		ScaleLibrary:     "config/scales.yaml",
		TicksPerStep:     240,
		Velocity:         100,
	}
}

// load settings from a config file over the defaults. a missing file is
// reported through warn and leaves the defaults in place.
func loadSettings(path string, warn func(string)) *settings {
	s := defaultSettings()
	if records, err := readCSV(path); err == nil {
		s.applyRecords(records, warn)
	} else {
		warn(err.Error())
	}
	return s
}

// apply CSV records
func (s *settings) applyRecords(records [][]string, warn func(string)) {
	v := reflect.ValueOf(s).Elem()
	for _, rec := range records {
		success := false
		if len(rec) == 2 {
			if field := v.FieldByName(rec[0]); field.IsValid() {
				switch field.Kind() {
				case reflect.Float64:
					if f, err := strconv.ParseFloat(rec[1], 64); err == nil && f > 0 {
						field.SetFloat(f)
						success = true
					}
				case reflect.Int:
					if i, err := strconv.Atoi(rec[1]); err == nil {
						field.SetInt(int64(i))
						success = true
					}
				case reflect.String:
					field.SetString(rec[1])
					success = true
				}
			}
		}
		if !success {
			warn(fmt.Sprintf("bad settings record: %v", rec))
		}
	}
	if s.Velocity < 1 || s.Velocity > 127 {
		warn(fmt.Sprintf("velocity %d out of range, using 100", s.Velocity))
		s.Velocity = 100
	}
	if s.TicksPerStep < 1 {
		warn(fmt.Sprintf("ticks per step %d out of range, using 240", s.TicksPerStep))
		s.TicksPerStep = 240
	}
}

// read records from a CSV file
func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	r.Comment = '#'
	return r.ReadAll()
}
