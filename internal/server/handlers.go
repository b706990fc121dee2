package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/framegate/framegate/internal/errors"
	"github.com/framegate/framegate/internal/metrics"
	"github.com/framegate/framegate/pkg/timecode"
	"github.com/framegate/framegate/pkg/version"
)

const maxRequestBody = 1 << 20 // 1MB

// timecodeRequest is the common request body for timecode operations.
type timecodeRequest struct {
	Timecode string `json:"timecode"`
	Rate     string `json:"rate"`
}

// addRequest adds a frame delta to a timecode.
type addRequest struct {
	Timecode string `json:"timecode"`
	Rate     string `json:"rate"`
	Frames   int64  `json:"frames"`
}

// convertRequest converts a timecode to another rate. Start and Anchor are
// mutually exclusive; when neither is set the conversion is absolute.
type convertRequest struct {
	Timecode string `json:"timecode"`
	Rate     string `json:"rate"`
	To       string `json:"to"`
	Start    string `json:"start,omitempty"`
	Anchor   string `json:"anchor,omitempty"`
}

// spliceRequest sums the duration of a set of ranges.
type spliceRequest struct {
	Rate   string         `json:"rate"`
	Ranges []spliceMember `json:"ranges"`
}

type spliceMember struct {
	In  string `json:"in"`
	Out string `json:"out"`
}

// timecodeResponse describes a timecode value.
type timecodeResponse struct {
	Timecode        string  `json:"timecode"`
	Rate            string  `json:"rate"`
	FrameCount      int64   `json:"frame_count"`
	DropFrame       bool    `json:"drop_frame"`
	Hours           int64   `json:"hours"`
	Minutes         int64   `json:"minutes"`
	Seconds         int64   `json:"seconds"`
	Frames          int64   `json:"frames"`
	DurationSeconds float64 `json:"duration_seconds"`
}

// convertResponse is a timecodeResponse annotated with the conversion mode.
type convertResponse struct {
	timecodeResponse
	Mode string `json:"mode"`
}

// rateResponse describes a registered frame rate.
type rateResponse struct {
	Name             string  `json:"name"`
	FPS              int64   `json:"fps"`
	DropFrame        bool    `json:"drop_frame"`
	Numerator        int64   `json:"numerator"`
	Denominator      int64   `json:"denominator"`
	FrameDurationSec float64 `json:"frame_duration_seconds"`
}

// spliceResponse sums a set of ranges.
type spliceResponse struct {
	Rate            string         `json:"rate"`
	Frames          int64          `json:"frames"`
	DurationSeconds float64        `json:"duration_seconds"`
	Sorted          bool           `json:"sorted"`
	Union           *spliceMember  `json:"union,omitempty"`
	Ranges          []spliceMember `json:"ranges"`
}

func newTimecodeResponse(tc timecode.Timecode) timecodeResponse {
	h, m, sec, f := tc.Components()
	return timecodeResponse{
		Timecode:        tc.String(),
		Rate:            tc.Rate().Name(),
		FrameCount:      tc.FrameCount(),
		DropFrame:       tc.IsDropFrame(),
		Hours:           h,
		Minutes:         m,
		Seconds:         sec,
		Frames:          f,
		DurationSeconds: tc.Duration().Seconds(),
	}
}

// decodeJSON decodes a request body into dst
func (s *Server) decodeJSON(r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(nil, r.Body, maxRequestBody)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errors.NewValidationError(fmt.Sprintf("Invalid request body: %v", err))
	}
	return nil
}

// handleVersion handles the /version endpoint
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "public, max-age=3600")
	s.writeJSON(w, http.StatusOK, version.GetInfo())
}

// handleRates handles GET /api/v1/rates
func (s *Server) handleRates(w http.ResponseWriter, r *http.Request) {
	rates := timecode.Rates()
	response := make([]rateResponse, 0, len(rates))
	for _, rt := range rates {
		num, den := rt.Rational()
		response = append(response, rateResponse{
			Name:             rt.Name(),
			FPS:              rt.FPS(),
			DropFrame:        rt.DropFrame(),
			Numerator:        num,
			Denominator:      den,
			FrameDurationSec: rt.FrameDuration().Seconds(),
		})
	}

	s.writeJSON(w, http.StatusOK, response)
}

// handleParse handles POST /api/v1/timecodes/parse
func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	var req timecodeRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	tc, err := timecode.Parse(req.Timecode, req.Rate)
	metrics.RecordParse(req.Rate, err)
	if err != nil {
		s.writeError(w, r, errors.FromTimecodeError(err))
		return
	}

	s.writeJSON(w, http.StatusOK, newTimecodeResponse(tc))
}

// handleAddFrames handles POST /api/v1/timecodes/add
func (s *Server) handleAddFrames(w http.ResponseWriter, r *http.Request) {
	var req addRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	tc, err := timecode.Parse(req.Timecode, req.Rate)
	metrics.RecordParse(req.Rate, err)
	if err != nil {
		s.writeError(w, r, errors.FromTimecodeError(err))
		return
	}

	result, err := tc.AddFrames(req.Frames)
	if err != nil {
		s.writeError(w, r, errors.FromTimecodeError(err))
		return
	}

	s.writeJSON(w, http.StatusOK, newTimecodeResponse(result))
}

// handleConvert handles POST /api/v1/timecodes/convert
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	var req convertRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	if req.Start != "" && req.Anchor != "" {
		s.writeError(w, r, errors.NewValidationError("start and anchor are mutually exclusive"))
		return
	}

	tc, err := timecode.Parse(req.Timecode, req.Rate)
	metrics.RecordParse(req.Rate, err)
	if err != nil {
		s.writeError(w, r, errors.FromTimecodeError(err))
		return
	}

	mode := metrics.ModeAbsolute
	begin := time.Now()

	var result timecode.Timecode
	switch {
	case req.Anchor != "":
		mode = metrics.ModeAnchored
		start, err := s.anchors.Resolve(r.Context(), req.Anchor)
		if err != nil {
			s.writeError(w, r, s.anchorError(req.Anchor, err))
			return
		}
		result, err = tc.ConvertWithStart(req.To, start)
		if err != nil {
			s.writeError(w, r, errors.FromTimecodeError(err))
			return
		}
	case req.Start != "":
		mode = metrics.ModeAnchored
		start, err := timecode.Parse(req.Start, req.Rate)
		if err != nil {
			s.writeError(w, r, errors.FromTimecodeError(err))
			return
		}
		result, err = tc.ConvertWithStart(req.To, start)
		if err != nil {
			s.writeError(w, r, errors.FromTimecodeError(err))
			return
		}
	default:
		result, err = tc.ConvertTo(req.To)
		if err != nil {
			s.writeError(w, r, errors.FromTimecodeError(err))
			return
		}
	}

	metrics.RecordConversion(req.Rate, req.To, mode)
	metrics.ObserveConversionDuration(time.Since(begin).Seconds())

	s.writeJSON(w, http.StatusOK, convertResponse{
		timecodeResponse: newTimecodeResponse(result),
		Mode:             mode,
	})
}

// handleSpliceDuration handles POST /api/v1/splices/duration
func (s *Server) handleSpliceDuration(w http.ResponseWriter, r *http.Request) {
	var req spliceRequest
	if err := s.decodeJSON(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	if len(req.Ranges) == 0 {
		s.writeError(w, r, errors.NewValidationError("ranges must not be empty"))
		return
	}

	splice := make(timecode.Splice, 0, len(req.Ranges))
	for i, m := range req.Ranges {
		in, err := timecode.Parse(m.In, req.Rate)
		if err != nil {
			s.writeError(w, r, errors.FromTimecodeError(err).WithDetails(map[string]interface{}{"range": i, "field": "in"}))
			return
		}
		out, err := timecode.Parse(m.Out, req.Rate)
		if err != nil {
			s.writeError(w, r, errors.FromTimecodeError(err).WithDetails(map[string]interface{}{"range": i, "field": "out"}))
			return
		}
		rng, err := timecode.NewRange(in, out)
		if err != nil {
			s.writeError(w, r, errors.FromTimecodeError(err))
			return
		}
		splice = append(splice, rng)
	}

	response := spliceResponse{
		Rate:            req.Rate,
		Frames:          splice.Frames(),
		DurationSeconds: splice.Size().Seconds(),
		Sorted:          splice.Sorted(),
		Ranges:          req.Ranges,
	}

	union := splice.Union().Canon()
	response.Union = &spliceMember{In: union.In.String(), Out: union.Out.String()}

	s.writeJSON(w, http.StatusOK, response)
}
