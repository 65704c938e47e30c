package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/camden-git/personsbackend/models"
	"github.com/camden-git/personsbackend/repository"
	"github.com/go-chi/chi/v5"
)

type PersonHandler struct {
	Repo repository.PersonRepositoryInterface
}

// personRequest is the accepted request body; an id in the body is never applied.
type personRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// RegisterPersonRoutes mounts the person endpoints under /persons on r.
func RegisterPersonRoutes(r chi.Router, ph *PersonHandler) {
	r.Route("/persons", func(r chi.Router) {
		r.Get("/", ph.ListPersons)
		r.Post("/", ph.CreatePerson)
		r.Route("/{person_id}", func(r chi.Router) {
			r.Get("/", ph.GetPerson)
			r.Put("/", ph.UpdatePerson)
			r.Delete("/", ph.DeletePerson)
		})
	})
}

func personIDParam(w http.ResponseWriter, r *http.Request) (uint, bool) {
	idStr := chi.URLParam(r, "person_id")
	id, err := strconv.ParseUint(idStr, 10, 0)
	if err != nil {
		WriteAPIError(w, http.StatusBadRequest, codeInvalidID, "Invalid person ID format")
		return 0, false
	}
	return uint(id), true
}

func decodePersonRequest(w http.ResponseWriter, r *http.Request) (personRequest, bool) {
	var req personRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteAPIError(w, http.StatusBadRequest, codeInvalidBody, "Invalid request body: "+err.Error())
		return personRequest{}, false
	}
	return req, true
}

func (ph *PersonHandler) ListPersons(w http.ResponseWriter, r *http.Request) {
	persons, err := ph.Repo.FindAll()
	if err != nil {
		log.Printf("Error listing persons: %v", err)
		WriteAPIError(w, http.StatusInternalServerError, codeStoreError, "Failed to retrieve persons")
		return
	}
	if persons == nil {
		persons = []models.Person{}
	}
	writeJSON(w, http.StatusOK, persons)
}

func (ph *PersonHandler) GetPerson(w http.ResponseWriter, r *http.Request) {
	personID, ok := personIDParam(w, r)
	if !ok {
		return
	}

	person, err := ph.Repo.FindByID(personID)
	if err != nil {
		log.Printf("Error getting person %d: %v", personID, err)
		WriteAPIError(w, http.StatusInternalServerError, codeStoreError, "Failed to retrieve person")
		return
	}
	if person == nil {
		writeStatus(w, http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, person)
}

func (ph *PersonHandler) CreatePerson(w http.ResponseWriter, r *http.Request) {
	req, ok := decodePersonRequest(w, r)
	if !ok {
		return
	}

	created, err := ph.Repo.Save(&models.Person{Name: req.Name, Email: req.Email})
	if err != nil {
		log.Printf("Error creating person '%s': %v", req.Name, err)
		WriteAPIError(w, http.StatusInternalServerError, codeStoreError, "Failed to create person")
		return
	}

	writeJSON(w, http.StatusOK, created)
}

// UpdatePerson overwrites name and email of an existing person; the path id is authoritative.
func (ph *PersonHandler) UpdatePerson(w http.ResponseWriter, r *http.Request) {
	personID, ok := personIDParam(w, r)
	if !ok {
		return
	}

	req, ok := decodePersonRequest(w, r)
	if !ok {
		return
	}

	person, err := ph.Repo.FindByID(personID)
	if err != nil {
		log.Printf("Error loading person %d for update: %v", personID, err)
		WriteAPIError(w, http.StatusInternalServerError, codeStoreError, "Failed to update person")
		return
	}
	if person == nil {
		writeStatus(w, http.StatusNotFound)
		return
	}

	person.Name = req.Name
	person.Email = req.Email

	updated, err := ph.Repo.Save(person)
	if err != nil {
		log.Printf("Error updating person %d: %v", personID, err)
		WriteAPIError(w, http.StatusInternalServerError, codeStoreError, "Failed to update person")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (ph *PersonHandler) DeletePerson(w http.ResponseWriter, r *http.Request) {
	personID, ok := personIDParam(w, r)
	if !ok {
		return
	}

	exists, err := ph.Repo.ExistsByID(personID)
	if err != nil {
		log.Printf("Error checking person %d before delete: %v", personID, err)
		WriteAPIError(w, http.StatusInternalServerError, codeStoreError, "Failed to delete person")
		return
	}
	if !exists {
		writeStatus(w, http.StatusNotFound)
		return
	}

	if err := ph.Repo.DeleteByID(personID); err != nil {
		log.Printf("Error deleting person %d: %v", personID, err)
		WriteAPIError(w, http.StatusInternalServerError, codeStoreError, "Failed to delete person")
		return
	}

	writeStatus(w, http.StatusNoContent)
}
