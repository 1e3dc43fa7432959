// Package router assembles the chi mux: middleware, CORS, the health
// endpoint, and the student routes.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/aanand-mishra/student-management/internal/http/handlers/student"
	"github.com/aanand-mishra/student-management/internal/storage"
	"github.com/aanand-mishra/student-management/internal/utils/response"
)

// New builds the full route table over the given store.
//
// Route table:
//
//	GET    /              health check
//	POST   /students/     create a student
//	GET    /students/     list students (optional ?skip= and ?limit=)
//	GET    /students/{id} get one student
//	PUT    /students/{id} update a student
//	DELETE /students/{id} delete a student
//
// StripSlashes makes /students/ and /students equivalent, so the
// trailing-slash paths the web client uses and the bare paths curl
// users type both work.
func New(store storage.Storage, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/", Health)

	r.Route("/students", func(r chi.Router) {
		r.Post("/", student.Create(store))
		r.Get("/", student.List(store))
		r.Get("/{id}", student.GetByID(store))
		r.Put("/{id}", student.Update(store))
		r.Delete("/{id}", student.Delete(store))
	})

	return r
}

// Health answers GET / with a static acknowledgement. It takes no
// dependencies so it keeps working even if the store is wedged; load
// balancers only need to know the process is serving.
func Health(w http.ResponseWriter, r *http.Request) {
	response.WriteJSON(w, http.StatusOK, response.OK("student management API is running"))
}
