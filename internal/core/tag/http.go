package tag

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/silo/internal/platform/request"
	"github.com/taibuivan/silo/internal/platform/respond"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listTags)
	router.Post("/", handler.createTag)
	router.Get("/{id}", handler.getTag)
	router.Put("/{id}", handler.updateTag)
	router.Delete("/{id}", handler.deleteTag)

	return router
}

func (handler *Handler) listTags(writer http.ResponseWriter, request *http.Request) {
	tags, err := handler.service.ListTags(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, tags)
}

func (handler *Handler) getTag(writer http.ResponseWriter, request *http.Request) {
	tag, err := handler.service.GetTag(request.Context(), requestutil.IntParam(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, tag)
}

func (handler *Handler) createTag(writer http.ResponseWriter, request *http.Request) {
	var input Tag
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateTag(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, input)
}

func (handler *Handler) updateTag(writer http.ResponseWriter, request *http.Request) {
	var input Tag
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	input.ID = requestutil.IntParam(request, "id")

	if err := handler.service.UpdateTag(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

func (handler *Handler) deleteTag(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteTag(request.Context(), requestutil.IntParam(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
