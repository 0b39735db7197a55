package http

import (
	"net/http"

	"hit-analytics/internal/beacons"
	"hit-analytics/internal/models"
	"hit-analytics/internal/shared/loggers"
)

// beaconGIF is the 1x1 transparent pixel every beacon response carries.
var beaconGIF = []byte{
	0x47, 0x49, 0x46, 0x38, 0x39, 0x61, 0x01, 0x00, 0x01, 0x00, 0x80,
	0x01, 0x00, 0x00, 0x00, 0x00, 0xff, 0xff, 0xff, 0x21, 0xf9, 0x04,
	0x01, 0x0a, 0x00, 0x01, 0x00, 0x2c, 0x00, 0x00, 0x00, 0x00, 0x01,
	0x00, 0x01, 0x00, 0x00, 0x02, 0x02, 0x4c, 0x01, 0x00, 0x3b,
}

type AppHttpHandler interface {
	Handle(w http.ResponseWriter, r *http.Request) error
}

type countHandler struct {
	beaconService beacons.BeaconService
}

func NewCountHandler(beaconService beacons.BeaconService) AppHttpHandler {
	return &countHandler{
		beaconService: beaconService,
	}
}

// Handle processes GET|POST /count requests. The response is always 200 with
// the pixel, whatever the pipeline decided: the endpoint must not reveal
// classification outcomes to the page or to whoever is probing it.
func (h *countHandler) Handle(w http.ResponseWriter, r *http.Request) error {
	params := r.URL.Query()
	if r.Method == http.MethodPost {
		// ParseForm merges URL query and form body; either may carry the
		// beacon parameters.
		if err := r.ParseForm(); err == nil {
			params = r.Form
		}
	}

	meta := models.RequestMeta{
		RemoteAddr: remoteAddr(r),
		UserAgent:  r.UserAgent(),
		Prerender:  isPrerender(r),
		InFrame:    isFramed(r),
	}
	derived := beacons.Derived{Referrer: r.Referer()}

	_, err := h.beaconService.Record(r.Context(), params.Get(paramSite), params, derived, meta)
	if err != nil {
		// Malformed beacons are an observability event, not a client error.
		loggers.Ctx(r.Context()).Debug().Err(err).Msg("beacon rejected")
	}

	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Content-Type", "image/gif")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(beaconGIF)
	return nil
}
