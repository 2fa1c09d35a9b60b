package model

// SongNote is one playable entry in a sheet. Chords are represented as
// multiple entries sharing the same time.
type SongNote struct {
	Key  string  `json:"key"`
	Time float64 `json:"time"`
}

// Sheet is the persisted notation artifact. Field names are fixed, they
// have to match what the downstream players parse.
type Sheet struct {
	Name          string     `json:"name"`
	Author        string     `json:"author"`
	TranscribedBy string     `json:"transcribedBy"`
	BPM           int        `json:"bpm"`
	BitsPerPage   int        `json:"bitsPerPage"`
	PitchLevel    int        `json:"pitchLevel"`
	IsComposed    bool       `json:"isComposed"`
	IsEncrypted   bool       `json:"isEncrypted"`
	SongNotes     []SongNote `json:"songNotes"`
}

type SheetMetadata struct {
	Title         string
	Author        string
	TranscribedBy string
	BPM           int
	NumNotes      int
}
