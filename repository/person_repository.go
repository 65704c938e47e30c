package repository

import (
	"errors"
	"fmt"

	"github.com/camden-git/personsbackend/models"
	"gorm.io/gorm"
)

// PersonRepository handles database operations for Person entities through GORM
type PersonRepository struct {
	DB *gorm.DB
}

// NewPersonRepository creates a new instance of PersonRepository
func NewPersonRepository(db *gorm.DB) *PersonRepository {
	return &PersonRepository{DB: db}
}

// FindAll retrieves all people ordered by ID
func (r *PersonRepository) FindAll() ([]models.Person, error) {
	people := []models.Person{}
	err := r.DB.Order("id ASC").Find(&people).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list people: %w", err)
	}
	return people, nil
}

// FindByID retrieves a person by their ID
func (r *PersonRepository) FindByID(id uint) (*models.Person, error) {
	var person models.Person
	err := r.DB.First(&person, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get person by ID %d: %w", id, err)
	}
	return &person, nil
}

// Save creates the person when it has no ID yet, otherwise writes all of its fields
func (r *PersonRepository) Save(person *models.Person) (*models.Person, error) {
	var err error
	if person.ID == 0 {
		err = r.DB.Create(person).Error
	} else {
		// gorm falls back to an upsert when the update touches no row
		err = r.DB.Save(person).Error
	}
	if err != nil {
		return nil, fmt.Errorf("failed to save person %s: %w", person.Name, err)
	}
	return person, nil
}

// ExistsByID reports whether a person with the given ID is stored
func (r *PersonRepository) ExistsByID(id uint) (bool, error) {
	var count int64
	err := r.DB.Model(&models.Person{}).Where("id = ?", id).Limit(1).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check person ID %d: %w", id, err)
	}
	return count > 0, nil
}

// DeleteByID removes a person by their ID. Deleting a missing ID is not an error.
func (r *PersonRepository) DeleteByID(id uint) error {
	result := r.DB.Delete(&models.Person{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete person ID %d: %w", id, result.Error)
	}
	return nil
}
