package http

import (
	"context"
	"embed"
	"html/template"
	"io"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/voicenav"
)

// SessionCookie names the cookie holding the session id.
const SessionCookie = "voicenav_session"

// DefaultMaxUploadSize caps the size of a multipart upload request.
const DefaultMaxUploadSize = 32 << 20

// ShutdownTimeout is the time given for outstanding requests to finish.
const ShutdownTimeout = 5 * time.Second

//go:embed html/*.html
var htmlFS embed.FS

var pages = map[string]*template.Template{
	"upload": parsePage("upload.html"),
	"select": parsePage("select.html"),
	"result": parsePage("result.html"),
}

type elementGroup struct {
	Title    string
	Elements []voicenav.Element
}

func parsePage(name string) *template.Template {
	return template.Must(template.New(name).Funcs(template.FuncMap{
		"group": func(title string, elements []voicenav.Element) elementGroup {
			return elementGroup{Title: title, Elements: elements}
		},
	}).ParseFS(htmlFS, "html/layout.html", "html/"+name))
}

// Server serves the upload, selection and generation web UI.
type Server struct {
	ln     net.Listener
	server *http.Server
	mux    *http.ServeMux

	// Bind address for the server's listener.
	Addr string

	// Largest accepted upload request in bytes.
	MaxUploadSize int64

	Logger *slog.Logger

	// Services used by the various HTTP routes. Selections and Scripts are
	// optional.
	Extractor  voicenav.Extractor
	Generator  voicenav.Generator
	Sessions   voicenav.SessionStore
	Selections voicenav.SelectionWriter
	Scripts    voicenav.ScriptService
}

// NewServer returns a new instance of Server.
func NewServer() *Server {
	s := &Server{
		mux:           http.NewServeMux(),
		MaxUploadSize: DefaultMaxUploadSize,
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	s.server = &http.Server{Handler: s}

	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("POST /process", s.handleProcess)
	s.mux.HandleFunc("GET /select-components", s.handleSelectComponents)
	s.mux.HandleFunc("POST /generate", s.handleGenerate)
	s.mux.HandleFunc("GET /generated/{file}", s.handleGenerated)
	s.mux.HandleFunc("GET /annotated/{index}", s.handleAnnotated)

	return s
}

// ServeHTTP logs the request and dispatches it to the matching route.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	begin := time.Now()
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	s.mux.ServeHTTP(rec, r)
	s.Logger.Info("request",
		"method", r.Method,
		"path", r.URL.Path,
		"status", rec.status,
		"duration", time.Since(begin),
	)
}

// Open begins listening on the bind address and serves in the background.
func (s *Server) Open() (err error) {
	if s.ln, err = net.Listen("tcp", s.Addr); err != nil {
		return err
	}
	go s.server.Serve(s.ln)
	return nil
}

// Close gracefully shuts down the server.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// URL returns the local base URL of the running server.
func (s *Server) URL() string {
	if s.ln == nil {
		return ""
	}
	host, port, _ := net.SplitHostPort(s.ln.Addr().String())
	if host == "" || host == "::" || host == "0.0.0.0" {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "upload", nil)
}

func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.MaxUploadSize)
	if err := r.ParseMultipartForm(s.MaxUploadSize); err != nil && err != http.ErrNotMultipart {
		Error(w, r, s.Logger, voicenav.Errorf(voicenav.EINVALID, "Could not read upload: %s", err))
		return
	}

	var headers []*multipartHeader
	if r.MultipartForm != nil {
		for _, fh := range r.MultipartForm.File["htmlfiles"] {
			headers = append(headers, &multipartHeader{fh})
		}
	}
	if len(headers) == 0 {
		Error(w, r, s.Logger, voicenav.Errorf(voicenav.EINVALID, "No files uploaded. Please select valid HTML files."))
		return
	}

	uploads := make([]voicenav.Upload, 0, len(headers))
	for _, h := range headers {
		upload, err := h.read()
		if err != nil {
			Error(w, r, s.Logger, err)
			return
		}
		uploads = append(uploads, upload)
	}

	result, err := s.Extractor.Extract(uploads)
	if err != nil {
		Error(w, r, s.Logger, err)
		return
	}

	// A new upload replaces the catalog of the browser's current session.
	session := &voicenav.Session{Catalog: result.Catalog, Documents: result.Documents}
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		if _, err := s.Sessions.FindSession(r.Context(), cookie.Value); err == nil {
			session.ID = cookie.Value
		}
	}
	if err := s.Sessions.SaveSession(r.Context(), session); err != nil {
		Error(w, r, s.Logger, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    session.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/select-components", http.StatusSeeOther)
}

func (s *Server) handleSelectComponents(w http.ResponseWriter, r *http.Request) {
	session, err := s.session(r)
	if err != nil {
		Error(w, r, s.Logger, err)
		return
	}
	s.render(w, r, "select", session)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		Error(w, r, s.Logger, voicenav.Errorf(voicenav.EINVALID, "Could not read form: %s", err))
		return
	}

	session, err := s.session(r)
	if err != nil {
		Error(w, r, s.Logger, err)
		return
	}

	selections, err := voicenav.BuildSelections(&session.Catalog, r.PostForm["components"], formNames(r.PostForm))
	if err != nil {
		Error(w, r, s.Logger, err)
		return
	}

	source, err := s.Generator.Generate(selections)
	if err != nil {
		Error(w, r, s.Logger, err)
		return
	}

	if s.Selections != nil {
		if err := s.Selections.SaveSelections(r.Context(), selections); err != nil {
			s.Logger.Error("save selections", "err", err)
			http.Error(w, "An error occurred while saving the data.", http.StatusInternalServerError)
			return
		}
	}

	script := &voicenav.Script{Selections: selections, Source: source}
	if s.Scripts != nil {
		if err := s.Scripts.CreateScript(r.Context(), script); err != nil {
			s.Logger.Error("record script", "err", err)
			http.Error(w, "An error occurred while saving the data.", http.StatusInternalServerError)
			return
		}
	}

	s.render(w, r, "result", struct {
		Selections []voicenav.Selection
		Source     string
		ScriptID   string
	}{selections, source, script.ID})
}

func (s *Server) handleGenerated(w http.ResponseWriter, r *http.Request) {
	id, ok := strings.CutSuffix(r.PathValue("file"), ".js")
	if !ok || s.Scripts == nil {
		Error(w, r, s.Logger, voicenav.Errorf(voicenav.ENOTFOUND, "Script not found."))
		return
	}

	script, err := s.Scripts.FindScriptByID(r.Context(), id)
	if err != nil {
		Error(w, r, s.Logger, err)
		return
	}

	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="generated_code.js"`)
	_, _ = io.WriteString(w, script.Source)
}

func (s *Server) handleAnnotated(w http.ResponseWriter, r *http.Request) {
	session, err := s.session(r)
	if err != nil {
		Error(w, r, s.Logger, err)
		return
	}

	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil || index < 0 || index >= len(session.Documents) {
		Error(w, r, s.Logger, voicenav.Errorf(voicenav.ENOTFOUND, "Document not found."))
		return
	}
	doc := session.Documents[index]

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename=`+strconv.Quote(filepath.Base(doc.Filename)))
	_, _ = io.WriteString(w, doc.HTML)
}

// session returns the session named by the request cookie. A missing or
// expired session yields an empty one, so pages render without uploads.
func (s *Server) session(r *http.Request) (*voicenav.Session, error) {
	empty := &voicenav.Session{Catalog: voicenav.Catalog{
		Buttons:    []voicenav.Element{},
		Anchors:    []voicenav.Element{},
		NavAnchors: []voicenav.Element{},
	}}

	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		return empty, nil
	}
	session, err := s.Sessions.FindSession(r.Context(), cookie.Value)
	if voicenav.ErrorCode(err) == voicenav.ENOTFOUND {
		return empty, nil
	} else if err != nil {
		return nil, err
	}
	return session, nil
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, page string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	tmpl := pages[page]
	if err := tmpl.ExecuteTemplate(w, tmpl.Name(), data); err != nil {
		s.Logger.Error("render", "page", page, "err", err)
	}
}

// formNames collects the names[<id>] fields of a submitted selection form.
func formNames(form map[string][]string) map[string]string {
	names := make(map[string]string)
	for key, values := range form {
		id, ok := strings.CutPrefix(key, "names[")
		if !ok {
			continue
		}
		id, ok = strings.CutSuffix(id, "]")
		if !ok || len(values) == 0 {
			continue
		}
		names[id] = values[0]
	}
	return names
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
