package repository

import (
	"github.com/camden-git/personsbackend/models"
)

// PersonRepositoryInterface defines the methods for person data operations
type PersonRepositoryInterface interface {
	// FindAll returns every stored person; the slice is empty, never nil, when the store is empty.
	FindAll() ([]models.Person, error)
	// FindByID returns nil and no error when the person does not exist.
	FindByID(id uint) (*models.Person, error)
	// Save inserts a person without an ID (assigning one) and overwrites
	// the full record of a person that carries an ID.
	Save(person *models.Person) (*models.Person, error)
	ExistsByID(id uint) (bool, error)
	DeleteByID(id uint) error
}

var (
	_ PersonRepositoryInterface = (*PersonRepository)(nil)
	_ PersonRepositoryInterface = (*SQLPersonRepository)(nil)
)
