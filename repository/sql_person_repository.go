package repository

import (
	"database/sql"
	"errors"

	"github.com/camden-git/personsbackend/database"
	"github.com/camden-git/personsbackend/models"
)

// SQLPersonRepository stores people through database/sql and squirrel-built statements
type SQLPersonRepository struct {
	DB *sql.DB
}

func NewSQLPersonRepository(db *sql.DB) *SQLPersonRepository {
	return &SQLPersonRepository{DB: db}
}

func (r *SQLPersonRepository) FindAll() ([]models.Person, error) {
	return database.ListPersons(r.DB)
}

func (r *SQLPersonRepository) FindByID(id uint) (*models.Person, error) {
	p, err := database.GetPersonByID(r.DB, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *SQLPersonRepository) Save(person *models.Person) (*models.Person, error) {
	if person.ID == 0 {
		id, err := database.InsertPerson(r.DB, person.Name, person.Email)
		if err != nil {
			return nil, err
		}
		person.ID = id
		return person, nil
	}
	if err := database.UpsertPerson(r.DB, *person); err != nil {
		return nil, err
	}
	return person, nil
}

func (r *SQLPersonRepository) ExistsByID(id uint) (bool, error) {
	return database.PersonExists(r.DB, id)
}

func (r *SQLPersonRepository) DeleteByID(id uint) error {
	err := database.DeletePerson(r.DB, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	return err
}
