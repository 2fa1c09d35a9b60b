package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/bep/debounce"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jsphweid/skysheet/analysis"
	"github.com/jsphweid/skysheet/audio"
	"github.com/jsphweid/skysheet/constants"
	"github.com/jsphweid/skysheet/model"
	"github.com/jsphweid/skysheet/pipeline"
	"github.com/jsphweid/skysheet/progress"
	"github.com/jsphweid/skysheet/workspace"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

var (
	tracker   *progress.Tracker
	converter *pipeline.Converter
	sweep     func(func())
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Runs the conversion server",
	Long:  `Runs the conversion server`,
	Run: func(cmd *cobra.Command, args []string) {
		serve()
	},
}

// InitServer wires up the shared server state. Split out from serve so the
// e2e tests can run handlers without binding a port.
func InitServer() {
	cfg := pipeline.DefaultConfig()
	tracker = progress.NewTracker(time.Hour)
	converter = pipeline.NewConverter(cfg, tracker,
		analysis.New(constants.GetScriptsDir(), cfg.ConfidenceThreshold))
	sweep = debounce.New(30 * time.Second)
}

func HandleConvertYoutube(w http.ResponseWriter, r *http.Request) {
	var req model.ConvertYoutubeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "could not parse request body")
		return
	}
	if req.URL == "" {
		writeError(w, http.StatusBadRequest, "no YouTube URL provided")
		return
	}

	title := req.Title
	if title == "" {
		title = "YouTube Song"
	}
	jobID := req.JobID
	if jobID == "" {
		jobID = uuid.New().String()
	}

	log.Printf("converting YouTube URL: %v", req.URL)
	runConversion(w, jobID, title, &audio.YouTubeAcquirer{URL: req.URL})
}

func HandleConvertFile(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("audio")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no audio file provided")
		return
	}
	defer file.Close()

	title := r.FormValue("title")
	if title == "" {
		title = "Audio File"
	}
	jobID := r.FormValue("job_id")
	if jobID == "" {
		jobID = uuid.New().String()
	}

	staged, err := stageUpload(file, header.Filename)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "could not stage upload: "+err.Error())
		return
	}
	defer os.Remove(staged)

	log.Printf("converting uploaded file: %v", header.Filename)
	runConversion(w, jobID, title, &audio.FileAcquirer{Path: staged})
}

// runConversion executes the whole pipeline inside the request handler.
// Progress polling happens concurrently through the tracker.
func runConversion(w http.ResponseWriter, jobID, title string, acq pipeline.Acquirer) {
	res, err := converter.Run(noCancel(), jobID, title, acq)

	// coalesce orphaned-workspace sweeps across request bursts
	sweep(func() { workspace.SweepStale(24 * time.Hour) })

	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, model.ConvertResponse{
		Success:     true,
		Title:       res.Title,
		DownloadURL: "/download/" + filepath.Base(res.SheetPath),
		NotesCount:  res.NotesCount,
	})
}

func HandleProgress(w http.ResponseWriter, r *http.Request) {
	jobID := mux.Vars(r)["jobId"]
	rec, ok := tracker.Get(jobID)
	if !ok {
		writeJSON(w, http.StatusOK, model.ProgressResponse{
			Percent: 0,
			Message: "Job not found",
			Details: "",
		})
		return
	}
	writeJSON(w, http.StatusOK, model.ProgressResponse{
		Percent: rec.Percent,
		Message: rec.Message,
		Details: rec.Details,
	})
}

func HandleDownload(w http.ResponseWriter, r *http.Request) {
	filename := filepath.Base(mux.Vars(r)["filename"])
	path := filepath.Join(constants.GetOutputDir(), filename)
	if _, err := os.Stat(path); err != nil {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	http.ServeFile(w, r, path)
}

func stageUpload(file io.Reader, originalName string) (string, error) {
	if err := os.MkdirAll(constants.GetTempDir(), 0777); err != nil {
		return "", err
	}
	ext := filepath.Ext(originalName)
	tmp, err := os.CreateTemp(constants.GetTempDir(), "upload-*"+ext)
	if err != nil {
		return "", err
	}
	defer tmp.Close()
	if _, err := io.Copy(tmp, file); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return tmp.Name(), nil
}

// noCancel keeps a started job running to completion or failure even if
// the client goes away. Pollers can stop watching but not abort the work.
func noCancel() context.Context {
	return context.Background()
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Success: false, Error: msg})
}

func serve() {
	InitServer()

	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/convert/youtube", HandleConvertYoutube).Methods("POST")
	router.HandleFunc("/convert/file", HandleConvertFile).Methods("POST")
	router.HandleFunc("/progress/{jobId}", HandleProgress).Methods("GET")
	router.HandleFunc("/download/{filename}", HandleDownload).Methods("GET")

	addr := ":" + constants.GetPort()
	fmt.Printf("Listening on %v\n", addr)
	log.Fatal(http.ListenAndServe(addr, cors.Default().Handler(router)))
}
