package http

import (
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"comprobantes/internal/blob"
	"comprobantes/internal/core"
)

type loginData struct {
	Flash string
}

type formData struct {
	Flash     string
	FlashKind string
}

type listData struct {
	Flash     string
	FlashKind string
	Busqueda  string
	Fecha     string
	Tipo      string
	Records   []core.Record
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		_, msg := popFlash(w, r)
		s.render(w, r, "login.html", loginData{Flash: msg})
	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			s.renderStatus(w, r, http.StatusBadRequest, "login.html", loginData{Flash: "Solicitud no válida"})
			return
		}
		user := r.PostForm.Get("usuario")
		password := r.PostForm.Get("password")
		if !s.sessions.Verify(user, password) {
			slog.InfoContext(r.Context(), "Login rejected", "usuario", user)
			s.render(w, r, "login.html", loginData{Flash: "Usuario o contraseña incorrectos"})
			return
		}
		if err := s.sessions.Login(w); err != nil {
			slog.ErrorContext(r.Context(), "Session issue failed", "error", err)
			s.renderStatus(w, r, http.StatusInternalServerError, "login.html", loginData{Flash: "No se pudo iniciar sesión"})
			return
		}
		slog.InfoContext(r.Context(), "Login accepted", "usuario", user)
		http.Redirect(w, r, "/", http.StatusSeeOther)
	default:
		w.Header().Set("Allow", "GET, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.sessions.Logout(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	// The root pattern matches everything; anything that is not exactly /
	// is an unknown path.
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if !s.sessions.Authenticated(r) {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	switch r.Method {
	case http.MethodGet:
		kind, msg := popFlash(w, r)
		s.render(w, r, "index.html", formData{Flash: msg, FlashKind: kind})
	case http.MethodPost:
		s.handleSubmit(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleSubmit accepts the multipart form, uploads the image, then creates
// the record. The blob upload strictly precedes record creation: a failed
// upload creates no record, and a failed insert reports an error rather than
// retrying (the already-uploaded blob is left behind, logged as an orphan).
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		slog.WarnContext(r.Context(), "Multipart parse failed", "error", err)
		s.renderStatus(w, r, http.StatusBadRequest, "index.html",
			formData{Flash: "Formulario no válido o imagen demasiado grande", FlashKind: "error"})
		return
	}

	nombre := strings.TrimSpace(r.FormValue("nombre"))
	fecha := strings.TrimSpace(r.FormValue("fecha"))
	monto := strings.TrimSpace(r.FormValue("monto"))
	descripcion := strings.TrimSpace(r.FormValue("descripcion"))

	if nombre == "" || fecha == "" {
		s.renderStatus(w, r, http.StatusBadRequest, "index.html",
			formData{Flash: "Nombre y fecha son obligatorios", FlashKind: "error"})
		return
	}

	file, header, err := r.FormFile("imagen")
	if err != nil {
		s.renderStatus(w, r, http.StatusBadRequest, "index.html",
			formData{Flash: "Falta la imagen del comprobante", FlashKind: "error"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		slog.ErrorContext(r.Context(), "Read uploaded image failed", "error", err)
		s.renderStatus(w, r, http.StatusBadRequest, "index.html",
			formData{Flash: "No se pudo leer la imagen", FlashKind: "error"})
		return
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	ref, err := s.blobs.Put(r.Context(), blob.UniqueName(header.Filename), data, mimeType)
	if err != nil {
		slog.ErrorContext(r.Context(), "Image upload failed", "error", err, "filename", header.Filename)
		s.renderStatus(w, r, http.StatusBadGateway, "index.html",
			formData{Flash: "No se pudo subir la imagen, intenta de nuevo", FlashKind: "error"})
		return
	}

	rec := core.Record{
		Name:        nombre,
		Date:        fecha,
		Amount:      monto,
		Description: descripcion,
		ImageRef:    ref,
	}
	id, err := s.records.Create(r.Context(), rec)
	if err != nil {
		// The blob is already durable; deleting it here would need
		// per-backend delete support that no revision ever had.
		slog.ErrorContext(r.Context(), "Record create failed, blob orphaned",
			"error", err, "image_ref", ref)
		s.renderStatus(w, r, http.StatusInternalServerError, "index.html",
			formData{Flash: "No se pudo guardar el registro", FlashKind: "error"})
		return
	}

	slog.InfoContext(r.Context(), "Record created", "id", id, "nombre", nombre, "fecha", fecha)
	setFlash(w, "success", "Comprobante registrado")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	filter := core.Filter{
		Term:  q.Get("busqueda"),
		Field: core.FilterField(q.Get("tipo")),
		Date:  q.Get("fecha"),
	}.Normalize()

	kind, msg := popFlash(w, r)
	data := listData{
		Flash:     msg,
		FlashKind: kind,
		Busqueda:  filter.Term,
		Fecha:     filter.Date,
		Tipo:      filter.Field.String(),
	}

	records, err := s.records.List(r.Context(), filter)
	if err != nil {
		slog.ErrorContext(r.Context(), "List records failed", "error", err)
		data.Flash = "No se pudieron cargar las transferencias"
		data.FlashKind = "error"
		s.renderStatus(w, r, http.StatusInternalServerError, "lista.html", data)
		return
	}
	data.Records = records

	s.render(w, r, "lista.html", data)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	raw := strings.TrimPrefix(r.URL.Path, "/transferencias/eliminar/")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		http.NotFound(w, r)
		return
	}

	ok, err := s.records.Delete(r.Context(), id)
	switch {
	case err != nil:
		slog.ErrorContext(r.Context(), "Delete record failed", "error", err, "id", id)
		setFlash(w, "error", "No se pudo eliminar el registro")
	case !ok:
		setFlash(w, "error", "Registro no encontrado")
	default:
		slog.InfoContext(r.Context(), "Record deleted", "id", id)
		setFlash(w, "success", "Registro eliminado")
	}

	http.Redirect(w, r, "/transferencias", http.StatusSeeOther)
}

// handleUploads serves images stored by the local blob backend. Only mounted
// when that backend is active.
func (s *Server) handleUploads(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/uploads/")
	if name == "" || name != filepath.Base(name) || strings.Contains(name, "..") {
		http.NotFound(w, r)
		return
	}
	http.ServeFile(w, r, filepath.Join(s.uploadsDir, name))
}
