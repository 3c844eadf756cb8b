package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"regexp"
	"runtime/debug"

	"go.uber.org/zap"

	"github.com/OpenBuildRight/report-mapper-backend-sub000/amazon"
	"github.com/OpenBuildRight/report-mapper-backend-sub000/auth"
	"github.com/OpenBuildRight/report-mapper-backend-sub000/config"
	"github.com/OpenBuildRight/report-mapper-backend-sub000/dao"
	"github.com/OpenBuildRight/report-mapper-backend-sub000/events"
	"github.com/OpenBuildRight/report-mapper-backend-sub000/util"
)

// Constants serve as keys for setting values on a request-scoped Context.
const (
	CallerVal = iota
	CaptureGroupsVal
	EventVal
	Logger
	SessionID
	DAO
)

// AppServer is an http.Handler implementation that holds most service dependencies.
type AppServer struct {
	// Port is the TCP port that the web server listens on.
	Port string
	// Bind is the Network Address that the web server will use.
	Bind string
	// Addr is the combined network address and port the server listens on.
	Addr string
	// RootDAO is the interface contract with the database.
	RootDAO dao.DAO
	// Conf is the configuration passed to the application.
	Conf config.ServerSettingsConfiguration
	// ServicePrefix is the base url. Used when matching routes.
	ServicePrefix string
	// EventQueue is a Publisher interface we use to publish our main event stream.
	EventQueue events.Publisher
	// Permissions evaluates and records grants for observations and images.
	Permissions *auth.PermissionService
	// Access summarizes a caller's relationship to an observation.
	Access *auth.ObservationAccess
	// Images is the content store for uploaded image bytes.
	Images amazon.ImageStore
	// Routes holds the compiled regular expressions used when matching routes. See InitRegex method.
	Routes *StaticRx
}

// NewAppServer creates an AppServer.
func NewAppServer(conf config.ServerSettingsConfiguration) (*AppServer, error) {

	app := AppServer{
		Port:          conf.ListenPort,
		Bind:          conf.ListenBind,
		Addr:          conf.ListenBind + ":" + conf.ListenPort,
		Conf:          conf,
		ServicePrefix: regexp.QuoteMeta(conf.BasePath),
	}

	app.InitRegex()

	return &app, nil
}

// InitRegex compiles static regexes and initializes the AppServer Routes field.
func (h *AppServer) InitRegex() {
	route := func(path string) *regexp.Regexp {
		return regexp.MustCompile(h.ServicePrefix + path)
	}
	h.Routes = &StaticRx{
		// Service operations
		Ping: route("/ping$"),
		// - observations
		Observations: route("/observations$"),
		Observation:  route("/observations/(?P<observationId>[0-9a-fA-F]{32})$"),
		// - actions on observations
		ObservationPublish:   route("/observations/(?P<observationId>[0-9a-fA-F]{32})/publish$"),
		ObservationUnpublish: route("/observations/(?P<observationId>[0-9a-fA-F]{32})/unpublish$"),
		ObservationAccess:    route("/observations/(?P<observationId>[0-9a-fA-F]{32})/access$"),
		// - images
		Images:      route("/images$"),
		Image:       route("/images/(?P<imageId>[0-9a-fA-F]{32})$"),
		ImageStream: route("/images/(?P<imageId>[0-9a-fA-F]{32})/stream$"),
	}
}

// When there is a panic, all deferred functions get executed.
func logCrashInServeHTTP(logger *zap.Logger, w http.ResponseWriter) {
	if r := recover(); r != nil {
		logger.Error("report mapper crash", zap.Any("context", r), zap.String("stack", string(debug.Stack())))
		w.WriteHeader(http.StatusInternalServerError)
	}
}

// ServeHTTP handles the routing of requests
func (h AppServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {

	sessionID := newSessionID()
	w.Header().Add("sessionid", sessionID)

	caller := CallerFromRequest(r)
	logger := config.RootLogger.With(zap.String("session", sessionID))
	defer logCrashInServeHTTP(logger, w)

	event := reportEventFromRequest(r, sessionID, caller)

	ctx := context.Background()
	ctx = ContextWithLogger(ctx, logger)
	ctx = ContextWithCaller(ctx, caller)
	ctx = ContextWithSession(ctx, sessionID)
	ctx = ContextWithDAO(ctx, h.RootDAO)
	ctx = ContextWithEvent(ctx, event)

	logger.Info(
		"transaction start",
		zap.String("user", caller.UserID),
		zap.Bool("authenticated", caller.Authenticated),
		zap.String("method", r.Method),
		zap.String("uri", r.RequestURI),
	)

	var uri = r.URL.Path
	var herr *AppError

	switch r.Method {
	case "GET":
		switch {
		// - basic HTTP 200 health check
		case h.Routes.Ping.MatchString(uri):
			herr = nil
		// - get access info for an observation
		case h.Routes.ObservationAccess.MatchString(uri):
			ctx = parseCaptureGroups(ctx, r.URL.Path, h.Routes.ObservationAccess)
			herr = h.getObservationAccess(ctx, w, r)
		// - get observation properties
		case h.Routes.Observation.MatchString(uri):
			ctx = parseCaptureGroups(ctx, r.URL.Path, h.Routes.Observation)
			herr = h.getObservation(ctx, w, r)
		// - list observations
		case h.Routes.Observations.MatchString(uri):
			herr = h.listObservations(ctx, w, r)
		// - get image metadata
		case h.Routes.Image.MatchString(uri):
			ctx = parseCaptureGroups(ctx, r.URL.Path, h.Routes.Image)
			herr = h.getImage(ctx, w, r)
		// - get image content stream
		case h.Routes.ImageStream.MatchString(uri):
			ctx = parseCaptureGroups(ctx, r.URL.Path, h.Routes.ImageStream)
			herr = h.getImageStream(ctx, w, r)
		default:
			herr = do404(ctx, w, r)
		}

	case "POST":
		switch {
		// - create observation
		case h.Routes.Observations.MatchString(uri):
			herr = h.createObservation(ctx, w, r)
		// - publish observation
		case h.Routes.ObservationPublish.MatchString(uri):
			ctx = parseCaptureGroups(ctx, r.URL.Path, h.Routes.ObservationPublish)
			herr = h.publishObservation(ctx, w, r)
		// - unpublish observation
		case h.Routes.ObservationUnpublish.MatchString(uri):
			ctx = parseCaptureGroups(ctx, r.URL.Path, h.Routes.ObservationUnpublish)
			herr = h.unpublishObservation(ctx, w, r)
		// - upload image
		case h.Routes.Images.MatchString(uri):
			herr = h.createImage(ctx, w, r)
		default:
			herr = do404(ctx, w, r)
		}

	case "PUT":
		switch {
		// - update observation properties
		case h.Routes.Observation.MatchString(uri):
			ctx = parseCaptureGroups(ctx, r.URL.Path, h.Routes.Observation)
			herr = h.updateObservation(ctx, w, r)
		default:
			herr = do404(ctx, w, r)
		}

	case "DELETE":
		switch {
		// - delete observation
		case h.Routes.Observation.MatchString(uri):
			ctx = parseCaptureGroups(ctx, r.URL.Path, h.Routes.Observation)
			herr = h.deleteObservation(ctx, w, r)
		// - delete image
		case h.Routes.Image.MatchString(uri):
			ctx = parseCaptureGroups(ctx, r.URL.Path, h.Routes.Image)
			herr = h.deleteImage(ctx, w, r)
		default:
			herr = do404(ctx, w, r)
		}
	default:
		herr = do404(ctx, w, r)
	}

	if herr != nil {
		h.publishError(ctx, herr)
		sendAppErrorResponse(logger, &w, herr)
	} else {
		countOKResponse(logger)
	}
}

// publishError emits a failed variant of the request event so failure actions
// can be routed to the event stream when configured.
func (h AppServer) publishError(ctx context.Context, herr *AppError) {
	if h.EventQueue == nil {
		return
	}
	event, ok := EventFromContext(ctx)
	if !ok {
		return
	}
	event.Success = false
	h.EventQueue.Publish(event)
}

// publishSuccess emits the request event after a handler completes.
func (h AppServer) publishSuccess(ctx context.Context, event events.ReportEvent) {
	if h.EventQueue == nil {
		return
	}
	event.Success = true
	h.EventQueue.Publish(event)
}

func newSessionID() string {
	return config.RandomID()
}

// ContextWithSession puts the sessionID on the context, used for log correlation
func ContextWithSession(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, SessionID, sessionID)
}

// ContextWithCaller returns a new Context object with a Caller value set. The const CallerVal acts
// as the key that maps to the caller value.
func ContextWithCaller(ctx context.Context, caller Caller) context.Context {
	return context.WithValue(ctx, CallerVal, caller)
}

// ContextWithEvent attaches the request event to the context object.
func ContextWithEvent(ctx context.Context, event events.ReportEvent) context.Context {
	return context.WithValue(ctx, EventVal, event)
}

// ContextWithDAO puts the DAO on the context so handlers can reach the database
func ContextWithDAO(ctx context.Context, d dao.DAO) context.Context {
	return context.WithValue(ctx, DAO, d)
}

// DAOFromContext returns the DAO associated with the context
func DAOFromContext(ctx context.Context) dao.DAO {
	d, ok := ctx.Value(DAO).(dao.DAO)
	if !ok {
		LoggerFromContext(ctx).Error("cannot get dao from context")
	}
	return d
}

// CallerFromContext extracts a Caller from a context, if set.
func CallerFromContext(ctx context.Context) (Caller, bool) {
	caller, ok := ctx.Value(CallerVal).(Caller)
	return caller, ok
}

// EventFromContext extracts the request event from a context, if set.
func EventFromContext(ctx context.Context) (events.ReportEvent, bool) {
	event, ok := ctx.Value(EventVal).(events.ReportEvent)
	return event, ok
}

// ContextWithLogger puts the logger on the context
func ContextWithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, Logger, logger)
}

// SessionIDFromContext extracts the session id from the context
func SessionIDFromContext(ctx context.Context) string {
	sessionID, ok := ctx.Value(SessionID).(string)
	if !ok {
		return "unknown"
	}
	return sessionID
}

// LoggerFromContext gets a zap logger from our context
func LoggerFromContext(ctx context.Context) *zap.Logger {
	logger, ok := ctx.Value(Logger).(*zap.Logger)
	if !ok {
		log.Print("!!! Any ctx object you get should have a logger set on it")
		return zap.NewNop()
	}
	return logger
}

func parseCaptureGroups(ctx context.Context, path string, regex *regexp.Regexp) context.Context {
	captured := util.GetRegexCaptureGroups(path, regex)
	return context.WithValue(ctx, CaptureGroupsVal, captured)
}

// CaptureGroupsFromContext extracts the capture groups from a context, if set
func CaptureGroupsFromContext(ctx context.Context) (map[string]string, bool) {
	captured, ok := ctx.Value(CaptureGroupsVal).(map[string]string)
	return captured, ok
}

func do404(ctx context.Context, w http.ResponseWriter, r *http.Request) *AppError {
	caller, ok := CallerFromContext(ctx)
	if !ok {
		caller = Caller{UserID: "UnknownUser"}
	}
	uri := r.URL.Path
	msg := caller.UserID + " from address " + r.RemoteAddr + " using " + r.UserAgent() + " unhandled operation " + r.Method + " " + uri
	return NewAppError(404, nil, fmt.Sprintf("Resource not found %s", msg))
}

// jsonResponse writes a response, and should be called for all HTTP handlers that return JSON.
func jsonResponse(w http.ResponseWriter, i interface{}) {
	w.Header().Set("Content-Type", "application/json")
	jsonData, _ := json.MarshalIndent(i, "", "  ")
	w.Write(jsonData)
}

// newGUID is a helper that ignores the error from util.NewGUID. If that function ever returns
// an error, something is seriously wrong with underlying hardware.
func newGUID() string {
	guid, err := util.NewGUID()
	if err != nil {
		log.Printf("could not create GUID: %s", err.Error())
	}
	return guid
}

// StaticRx statically references compiled regular expressions.
type StaticRx struct {
	Ping                 *regexp.Regexp
	Observations         *regexp.Regexp
	Observation          *regexp.Regexp
	ObservationPublish   *regexp.Regexp
	ObservationUnpublish *regexp.Regexp
	ObservationAccess    *regexp.Regexp
	Images               *regexp.Regexp
	Image                *regexp.Regexp
	ImageStream          *regexp.Regexp
}
