package sheet

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/jsphweid/skysheet/constants"
	"github.com/jsphweid/skysheet/model"
	"github.com/jsphweid/skysheet/util"
)

// ErrNoGroups means the whole track was rejected upstream and there is
// nothing to put on a sheet.
var ErrNoGroups = errors.New("no chord groups to build a sheet from")

// Metadata carries the free-text provenance fields plus the raw tempo
// estimate. BPM is truncated to an integer when the sheet is built.
type Metadata struct {
	Name          string
	Author        string
	TranscribedBy string
	BPM           float64
}

// Build assembles the final sheet. A group with one label yields one entry,
// a group with N labels yields N entries sharing the anchor time. That is
// how simultaneous chord notes are represented.
func Build(groups []model.ChordGroup, meta Metadata) (*model.Sheet, error) {
	if len(groups) == 0 {
		return nil, ErrNoGroups
	}

	s := model.Sheet{
		Name:          meta.Name,
		Author:        meta.Author,
		TranscribedBy: meta.TranscribedBy,
		BPM:           int(meta.BPM),
		BitsPerPage:   constants.BitsPerPage,
		PitchLevel:    constants.PitchLevel,
		IsComposed:    true,
		IsEncrypted:   false,
		SongNotes:     make([]model.SongNote, 0, len(groups)),
	}

	for _, g := range groups {
		for _, label := range g.Labels {
			s.SongNotes = append(s.SongNotes, model.SongNote{
				Key:  label,
				Time: g.AnchorTimeSeconds,
			})
		}
	}

	return &s, nil
}

// Save writes the sheet as JSON under dir, named after the sanitized song
// title. Returns the written path.
func Save(s *model.Sheet, dir string) (string, error) {
	name := util.SafeFilename(s.Name)
	if name == "" {
		name = uuid.New().String()
	}

	if err := os.MkdirAll(dir, 0777); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode sheet: %w", err)
	}

	path := filepath.Join(dir, name+".json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write sheet: %w", err)
	}
	return path, nil
}

func Load(path string) (*model.Sheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sheet: %w", err)
	}
	var s model.Sheet
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse sheet: %w", err)
	}
	return &s, nil
}
