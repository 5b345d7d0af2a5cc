package rest

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"lintang/bearmaps/pkg/datastructure"
	"lintang/bearmaps/pkg/geo"
	"lintang/bearmaps/pkg/guidance"
	"lintang/bearmaps/pkg/rasterer"
	"lintang/bearmaps/pkg/server"
	"lintang/bearmaps/pkg/server/rest/service"
	"lintang/bearmaps/pkg/util"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	geojson "github.com/paulmach/go.geojson"
)

type NavigationService interface {
	ShortestPath(ctx context.Context, srcLon, srcLat, dstLon, dstLat float64) (service.RouteResult, error)
	PrefixSearch(ctx context.Context, prefix string) []string
	SearchLocations(ctx context.Context, name string) []datastructure.Location
	MapRaster(ctx context.Context, req rasterer.RasterRequest) rasterer.RasterResult
	VerticesInBox(ctx context.Context, ullon, ullat, lrlon, lrlat float64) ([]datastructure.Location, error)
}

type NavigationHandler struct {
	svc          NavigationService
	promeMetrics *metrics
	validate     *validator.Validate
	trans        ut.Translator
}

func NavigatorRouter(r chi.Router, svc NavigationService, m *metrics) {
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	validate := validator.New()
	_ = enTranslations.RegisterDefaultTranslations(validate, trans)

	handler := &NavigationHandler{svc: svc, promeMetrics: m, validate: validate, trans: trans}

	r.Group(func(r chi.Router) {
		r.Route("/api/navigations", func(r chi.Router) {
			r.Post("/shortest-path", handler.shortestPath)
		})
		r.Route("/api/search", func(r chi.Router) {
			r.Get("/prefix", handler.prefixSearch)
			r.Get("/locations", handler.searchLocations)
		})
		r.Get("/api/raster", handler.mapRaster)
		r.Get("/api/vertices", handler.verticesInBox)
	})
}

// validateRequest render ErrValidation dan return false kalau data tidak lolos validasi.
func (h *NavigationHandler) validateRequest(w http.ResponseWriter, r *http.Request, data interface{}) bool {
	if err := h.validate.Struct(data); err != nil {
		render.Render(w, r, ErrValidation(err, translateError(err, h.trans)))
		return false
	}
	return true
}

// ShortestPathRequest model info
//
//	@Description	request body untuk shortest path query antara 2 lokasi
type ShortestPathRequest struct {
	SrcLon *float64 `json:"src_lon" validate:"required,gte=-180,lte=180"`
	SrcLat *float64 `json:"src_lat" validate:"required,gte=-90,lte=90"`
	DstLon *float64 `json:"dst_lon" validate:"required,gte=-180,lte=180"`
	DstLat *float64 `json:"dst_lat" validate:"required,gte=-90,lte=90"`
}

// Bind. pointer supaya koordinat 0 (equator / prime meridian) bisa dibedakan dari field yang tidak dikirim.
func (s *ShortestPathRequest) Bind(r *http.Request) error {
	if s.SrcLat == nil || s.SrcLon == nil || s.DstLat == nil || s.DstLon == nil {
		return errors.New("invalid request")
	}
	return nil
}

// ShortestPathResponse	model info
//
//	@Description	response body untuk shortest path query. found=false kalau kedua lokasi tidak terhubung.
type ShortestPathResponse struct {
	Found          bool                       `json:"found"`
	Route          []int64                    `json:"route"`
	Coordinates    []datastructure.Coordinate `json:"coordinates"`
	Path           string                     `json:"path"`
	GeoJSON        *geojson.Feature           `json:"geojson,omitempty"`
	Distance       float64                    `json:"distance"`
	Directions     []guidance.Maneuver        `json:"directions"`
	DirectionsText []string                   `json:"directions_text"`
}

func NewShortestPathResponse(res service.RouteResult) *ShortestPathResponse {
	resp := &ShortestPathResponse{
		Found:          res.Found,
		Route:          res.Route,
		Coordinates:    res.Coordinates,
		Path:           datastructure.RenderPath(res.Coordinates),
		Distance:       util.RoundFloat(res.Distance, 3),
		Directions:     res.Directions,
		DirectionsText: guidance.GetTurnDescriptions(res.Directions),
	}
	if res.Found {
		line := make([][]float64, 0, len(res.Coordinates))
		for _, c := range res.Coordinates {
			line = append(line, []float64{c.Lon, c.Lat})
		}
		resp.GeoJSON = geojson.NewLineStringFeature(line)
		resp.GeoJSON.SetProperty("distance", resp.Distance)

		src, dst := res.Coordinates[0], res.Coordinates[len(res.Coordinates)-1]
		midLon, midLat := geo.MidPoint(src.Lon, src.Lat, dst.Lon, dst.Lat)
		resp.GeoJSON.SetProperty("midpoint", []float64{midLon, midLat})
	}
	return resp
}

// shortestPath
//
//	@Summary		shortest path query antara 2 lokasi di map.
//	@Description	shortest path query antara 2 lokasi di map (A*), beserta turn-by-turn directions.
//	@Tags			navigations
//	@Param			body	body	ShortestPathRequest	true	"request body query shortest path antara 2 lokasi"
//	@Accept			application/json
//	@Produce		application/json
//	@Router			/navigations/shortest-path [post]
//	@Success		200	{object}	ShortestPathResponse
//	@Failure		400	{object}	ErrResponse
//	@Failure		500	{object}	ErrResponse
func (h *NavigationHandler) shortestPath(w http.ResponseWriter, r *http.Request) {
	data := &ShortestPathRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if !h.validateRequest(w, r, *data) {
		return
	}

	res, err := h.svc.ShortestPath(r.Context(), *data.SrcLon, *data.SrcLat, *data.DstLon, *data.DstLat)
	if err != nil {
		render.Render(w, r, ErrChi(err))
		return
	}
	h.promeMetrics.SPQueryCount.WithLabelValues(strconv.FormatBool(res.Found)).Inc()

	render.Status(r, http.StatusOK)
	render.JSON(w, r, NewShortestPathResponse(res))
}

// PrefixSearchRequest model info
//
//	@Description	query param autocomplete nama lokasi
type PrefixSearchRequest struct {
	Term string `validate:"required,max=256"`
}

// PrefixSearchResponse model info
//
//	@Description	nama lokasi yang diawali term
type PrefixSearchResponse struct {
	Names []string `json:"names"`
}

// prefixSearch
//
//	@Summary		autocomplete nama lokasi.
//	@Tags			search
//	@Param			term	query	string	true	"prefix nama lokasi"
//	@Produce		application/json
//	@Router			/search/prefix [get]
//	@Success		200	{object}	PrefixSearchResponse
//	@Failure		400	{object}	ErrResponse
func (h *NavigationHandler) prefixSearch(w http.ResponseWriter, r *http.Request) {
	data := PrefixSearchRequest{Term: r.URL.Query().Get("term")}
	if !h.validateRequest(w, r, data) {
		return
	}

	h.promeMetrics.SearchQueryCount.WithLabelValues("prefix").Inc()
	render.Status(r, http.StatusOK)
	render.JSON(w, r, &PrefixSearchResponse{Names: h.svc.PrefixSearch(r.Context(), data.Term)})
}

// LocationSearchRequest model info
//
//	@Description	query param pencarian lokasi dengan nama lengkap
type LocationSearchRequest struct {
	Name string `validate:"required,max=256"`
}

// LocationSearchResponse model info
//
//	@Description	semua lokasi dengan nama tersebut
type LocationSearchResponse struct {
	Locations []datastructure.Location `json:"locations"`
}

// searchLocations
//
//	@Summary		cari lokasi dengan nama lengkap.
//	@Tags			search
//	@Param			name	query	string	true	"nama lokasi"
//	@Produce		application/json
//	@Router			/search/locations [get]
//	@Success		200	{object}	LocationSearchResponse
//	@Failure		400	{object}	ErrResponse
func (h *NavigationHandler) searchLocations(w http.ResponseWriter, r *http.Request) {
	data := LocationSearchRequest{Name: r.URL.Query().Get("name")}
	if !h.validateRequest(w, r, data) {
		return
	}

	h.promeMetrics.SearchQueryCount.WithLabelValues("locations").Inc()
	render.Status(r, http.StatusOK)
	render.JSON(w, r, &LocationSearchResponse{Locations: h.svc.SearchLocations(r.Context(), data.Name)})
}

// BoxRequest model info
//
//	@Description	bounding box (upper-left, lower-right)
type BoxRequest struct {
	ULLon float64 `validate:"gte=-180,lte=180"`
	ULLat float64 `validate:"gte=-90,lte=90"`
	LRLon float64 `validate:"gte=-180,lte=180"`
	LRLat float64 `validate:"gte=-90,lte=90"`
}

// RasterRequest model info
//
//	@Description	query param map raster: bounding box & ukuran viewport (pixel)
type RasterRequest struct {
	BoxRequest
	W float64 `validate:"required,gt=0"`
	H float64 `validate:"required,gt=0"`
}

// mapRaster
//
//	@Summary		tile map yang menutupi bounding box untuk viewport.
//	@Tags			map
//	@Param			ullon	query	number	true	"upper-left longitude"
//	@Param			ullat	query	number	true	"upper-left latitude"
//	@Param			lrlon	query	number	true	"lower-right longitude"
//	@Param			lrlat	query	number	true	"lower-right latitude"
//	@Param			w		query	number	true	"viewport width (pixel)"
//	@Param			h		query	number	true	"viewport height (pixel)"
//	@Produce		application/json
//	@Router			/raster [get]
//	@Success		200	{object}	rasterer.RasterResult
//	@Failure		400	{object}	ErrResponse
func (h *NavigationHandler) mapRaster(w http.ResponseWriter, r *http.Request) {
	params, err := floatParams(r, "ullon", "ullat", "lrlon", "lrlat", "w", "h")
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	data := RasterRequest{
		BoxRequest: BoxRequest{ULLon: params[0], ULLat: params[1], LRLon: params[2], LRLat: params[3]},
		W:          params[4],
		H:          params[5],
	}
	if !h.validateRequest(w, r, data) {
		return
	}

	res := h.svc.MapRaster(r.Context(), rasterer.RasterRequest{
		Bounds: rasterer.Bounds{ULLon: data.ULLon, ULLat: data.ULLat, LRLon: data.LRLon, LRLat: data.LRLat},
		Width:  data.W,
		Height: data.H,
	})
	h.promeMetrics.RasterQueryCount.WithLabelValues(strconv.FormatBool(res.QuerySuccess)).Inc()

	render.Status(r, http.StatusOK)
	render.JSON(w, r, res)
}

// VerticesInBoxResponse model info
//
//	@Description	vertex road network di dalam bounding box
type VerticesInBoxResponse struct {
	Vertices []datastructure.Location `json:"vertices"`
}

// verticesInBox
//
//	@Summary		vertex road network di dalam bounding box.
//	@Tags			map
//	@Param			ullon	query	number	true	"upper-left longitude"
//	@Param			ullat	query	number	true	"upper-left latitude"
//	@Param			lrlon	query	number	true	"lower-right longitude"
//	@Param			lrlat	query	number	true	"lower-right latitude"
//	@Produce		application/json
//	@Router			/vertices [get]
//	@Success		200	{object}	VerticesInBoxResponse
//	@Failure		400	{object}	ErrResponse
func (h *NavigationHandler) verticesInBox(w http.ResponseWriter, r *http.Request) {
	params, err := floatParams(r, "ullon", "ullat", "lrlon", "lrlat")
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	data := BoxRequest{ULLon: params[0], ULLat: params[1], LRLon: params[2], LRLat: params[3]}
	if !h.validateRequest(w, r, data) {
		return
	}

	locs, err := h.svc.VerticesInBox(r.Context(), data.ULLon, data.ULLat, data.LRLon, data.LRLat)
	if err != nil {
		render.Render(w, r, ErrChi(err))
		return
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, &VerticesInBoxResponse{Vertices: locs})
}

// floatParams parse query param float sesuai urutan keys.
func floatParams(r *http.Request, keys ...string) ([]float64, error) {
	q := r.URL.Query()
	vals := make([]float64, 0, len(keys))
	for _, k := range keys {
		raw := q.Get(k)
		if raw == "" {
			return nil, errors.New("missing query param " + k)
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, errors.New("query param " + k + " is not a number")
		}
		vals = append(vals, v)
	}
	return vals, nil
}

// ErrResponse model info
//
//	@Description	model untuk error response
type ErrResponse struct {
	Err            error `json:"-"` // low-level runtime error
	HTTPStatusCode int   `json:"-"` // http response status code

	StatusText    string   `json:"status"`          // user-level status message
	AppCode       int64    `json:"code,omitempty"`  // application-specific error code
	ErrorText     string   `json:"error,omitempty"` // application-level error message, for debugging
	ErrValidation []string `json:"validation,omitempty"`
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

func ErrValidation(err error, errV []error) render.Renderer {
	vv := []string{}
	for _, v := range errV {
		vv = append(vv, v.Error())
	}
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: 400,
		StatusText:     "Invalid request.",
		ErrorText:      err.Error(),
		ErrValidation:  vv,
	}
}

func ErrInvalidRequest(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: 400,
		StatusText:     "Invalid request.",
		ErrorText:      err.Error(),
	}
}

func ErrChi(err error) render.Renderer {
	code := getStatusCode(err)
	statusText := "Internal server error."
	switch code {
	case http.StatusNotFound:
		statusText = "Resource not found."
	case http.StatusBadRequest:
		statusText = "Bad request."
	}

	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: code,
		StatusText:     statusText,
		ErrorText:      err.Error(),
	}
}

func getStatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}
	switch server.CodeOf(err) {
	case server.ErrNotFound:
		return http.StatusNotFound
	case server.ErrBadParamInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func translateError(err error, trans ut.Translator) (errs []error) {
	if err == nil {
		return nil
	}
	var validatorErrs validator.ValidationErrors
	if !errors.As(err, &validatorErrs) {
		return []error{err}
	}
	for _, e := range validatorErrs {
		errs = append(errs, errors.New(e.Translate(trans)))
	}
	return errs
}
