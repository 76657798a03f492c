package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/Faultbox/rocket-loadout/pkg/loadout"
)

type decodeRequest struct {
	Code   string `json:"code"`
	Verify *bool  `json:"verify,omitempty"`
}

type headerResponse struct {
	Version  uint8  `json:"version"`
	CodeSize uint16 `json:"code_size"`
	CRC      uint8  `json:"crc"`
}

type decodeResponse struct {
	Header  headerResponse   `json:"header"`
	Loadout loadout.Document `json:"loadout"`
}

type encodeResponse struct {
	Code string `json:"code"`
	Size uint16 `json:"size"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// DecodeLoadout decodes {"code": ...}. The request may override the default
// verification setting.
func DecodeLoadout(verifyDefault bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req decodeRequest
		if err := readJSON(r, &req); err != nil {
			writeError(w, err)
			return
		}
		verify := verifyDefault
		if req.Verify != nil {
			verify = *req.Verify
		}
		writeDecoded(w, req.Code, verify)
	}
}

// GetLoadout decodes the code in the URL path with verification.
func GetLoadout(w http.ResponseWriter, r *http.Request) {
	code, err := url.PathUnescape(chi.URLParam(r, "*"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	writeDecoded(w, code, true)
}

// EncodeLoadout encodes a loadout document and returns the code.
func EncodeLoadout(w http.ResponseWriter, r *http.Request) {
	var doc loadout.Document
	if err := readJSON(r, &doc); err != nil {
		writeError(w, err)
		return
	}
	l, err := doc.Loadout()
	if err != nil {
		writeError(w, err)
		return
	}
	code, err := loadout.Encode(l)
	if err != nil {
		writeError(w, err)
		return
	}
	h, err := loadout.Verify(code)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, encodeResponse{Code: code, Size: h.CodeSize})
}

func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func writeDecoded(w http.ResponseWriter, code string, verify bool) {
	l, err := loadout.Decode(code, loadout.WithVerify(verify))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, decodeResponse{
		Header: headerResponse{
			Version:  l.Header.Version,
			CodeSize: l.Header.CodeSize,
			CRC:      l.Header.CRC,
		},
		Loadout: l.Document(),
	})
}

var errBadRequest = errors.New("bad request")

func readJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return err
		}
		return errors.Join(errBadRequest, err)
	}
	return nil
}

func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, loadout.ErrMalformedCode),
		errors.Is(err, loadout.ErrSizeMismatch),
		errors.Is(err, loadout.ErrChecksumMismatch):
		return http.StatusUnprocessableEntity
	case errors.Is(err, errBadRequest),
		errors.Is(err, loadout.ErrFieldOverflow),
		errors.Is(err, loadout.ErrUnknownName),
		errors.Is(err, loadout.ErrInvalidColor):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
