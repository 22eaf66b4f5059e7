package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/bashar267/optical-topology-or/pkg/metrics"
	"github.com/bashar267/optical-topology-or/pkg/optical"
	"github.com/bashar267/optical-topology-or/pkg/util"
)

var serveListen string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the action API and Prometheus metrics endpoint",
	Long: `Serve exposes the discover, build and delete actions over HTTP as
JSON endpoints under /api/v1/, plus Prometheus action counters on
/metrics. The server shuts down cleanly on SIGINT or SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg := prometheus.NewRegistry()
		m := metrics.New(reg)
		engine = optical.NewEngine(st, m)

		mux := http.NewServeMux()
		mux.HandleFunc("/api/v1/discover", handleDiscover)
		mux.HandleFunc("/api/v1/build", handleBuild)
		mux.HandleFunc("/api/v1/delete", handleDelete)
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

		srv := &http.Server{
			Addr:    serveListen,
			Handler: mux,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			util.Infof("Listening on %s", serveListen)
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}

		util.Infof("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveListen, "listen", ":9477", "Listen address")
}

type discoverRequest struct {
	Devices []string `json:"devices,omitempty"`
}

type buildRequest struct {
	Device    string `json:"device"`
	Frequency string `json:"frequency"`
	SrcDegree int    `json:"src_degree"`
	DstDegree int    `json:"dst_degree,omitempty"`
	DstPP     int    `json:"dst_pp,omitempty"`
}

type deleteRequest struct {
	Device     string `json:"device"`
	Connection string `json:"connection"`
}

func handleDiscover(w http.ResponseWriter, r *http.Request) {
	var req discoverRequest
	if !decodeAction(w, r, &req) {
		return
	}
	status, err := engine.Discover(r.Context(), req.Devices)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": status})
}

func handleBuild(w http.ResponseWriter, r *http.Request) {
	var req buildRequest
	if !decodeAction(w, r, &req) {
		return
	}
	result, err := engine.Build(r.Context(), optical.BuildRequest{
		Device:    req.Device,
		Frequency: req.Frequency,
		SrcDegree: req.SrcDegree,
		DstDegree: req.DstDegree,
		DstPP:     req.DstPP,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"connection":         result.Connection,
		"source":             result.Source,
		"destination":        result.Destination,
		"interfaces_created": result.InterfacesCreated,
	})
}

func handleDelete(w http.ResponseWriter, r *http.Request) {
	var req deleteRequest
	if !decodeAction(w, r, &req) {
		return
	}
	status, err := engine.Delete(r.Context(), req.Device, req.Connection)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": status})
}

func decodeAction(w http.ResponseWriter, r *http.Request, req any) bool {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("decoding request: %v", err)})
		return false
	}
	return true
}

// writeError maps engine rejections to 4xx and everything else to 500.
func writeError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, util.ErrConnectionNotFound), errors.Is(err, util.ErrDeviceNotFound):
		code = http.StatusNotFound
	case errors.Is(err, util.ErrMissingParameter),
		errors.Is(err, util.ErrAmbiguousDestination),
		errors.Is(err, util.ErrValidationFailed):
		code = http.StatusBadRequest
	case errors.Is(err, util.ErrSlotConflict):
		code = http.StatusConflict
	}
	writeJSON(w, code, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		util.Errorf("Encoding response: %v", err)
	}
}
