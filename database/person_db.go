package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log"

	sq "github.com/Masterminds/squirrel"

	"github.com/camden-git/personsbackend/models"
)

var personColumns = []string{"id", "name", "email"}

func ListPersons(db *sql.DB) ([]models.Person, error) {
	queryBuilder := psql.Select(personColumns...).
		From(personsTable).
		OrderBy("id ASC")
	sqlStr, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build SQL for ListPersons: %w", err)
	}
	rows, err := db.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute ListPersons query: %w", err)
	}
	defer rows.Close()
	persons := []models.Person{}
	for rows.Next() {
		var p models.Person
		if err := rows.Scan(&p.ID, &p.Name, &p.Email); err != nil {
			log.Printf("Error scanning person row: %v", err)
			continue
		}
		persons = append(persons, p)
	}
	if err = rows.Err(); err != nil {
		return persons, fmt.Errorf("error iterating person rows: %w", err)
	}
	return persons, nil
}

// GetPersonByID returns sql.ErrNoRows when no person has the given id.
func GetPersonByID(db *sql.DB, personID uint) (models.Person, error) {
	var p models.Person
	queryBuilder := psql.Select(personColumns...).
		From(personsTable).
		Where(sq.Eq{"id": personID}).
		Limit(1)
	sqlStr, args, err := queryBuilder.ToSql()
	if err != nil {
		return models.Person{}, fmt.Errorf("failed to build SQL for GetPersonByID: %w", err)
	}
	err = db.QueryRow(sqlStr, args...).Scan(&p.ID, &p.Name, &p.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Person{}, sql.ErrNoRows
		}
		return models.Person{}, fmt.Errorf("failed to query or scan person with ID %d: %w", personID, err)
	}
	return p, nil
}

func InsertPerson(db *sql.DB, name, email string) (uint, error) {
	queryBuilder := psql.Insert(personsTable).
		Columns("name", "email").
		Values(name, email).
		Suffix("RETURNING id")
	sqlStr, args, err := queryBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build SQL for InsertPerson: %w", err)
	}
	var personID uint
	err = db.QueryRow(sqlStr, args...).Scan(&personID)
	if err != nil {
		return 0, fmt.Errorf("failed to execute InsertPerson query for %s: %w", name, err)
	}
	return personID, nil
}

// UpsertPerson writes every column of p, inserting the row when its id is not yet present.
func UpsertPerson(db *sql.DB, p models.Person) error {
	queryBuilder := psql.Insert(personsTable).
		Columns(personColumns...).
		Values(p.ID, p.Name, p.Email).
		Suffix("ON CONFLICT(id) DO UPDATE SET").
		Suffix("name = excluded.name,").
		Suffix("email = excluded.email")
	sqlStr, args, err := queryBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build SQL for UpsertPerson: %w", err)
	}
	if _, err := db.Exec(sqlStr, args...); err != nil {
		return fmt.Errorf("failed to execute UpsertPerson for ID %d: %w", p.ID, err)
	}
	return nil
}

func PersonExists(db *sql.DB, personID uint) (bool, error) {
	queryBuilder := psql.Select("1").
		Prefix("SELECT EXISTS (").
		From(personsTable).
		Where(sq.Eq{"id": personID}).
		Suffix(")")
	sqlStr, args, err := queryBuilder.ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build SQL for PersonExists: %w", err)
	}
	var exists bool
	if err := db.QueryRow(sqlStr, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check existence of person ID %d: %w", personID, err)
	}
	return exists, nil
}

// DeletePerson returns sql.ErrNoRows when nothing was deleted.
func DeletePerson(db *sql.DB, personID uint) error {
	queryBuilder := psql.Delete(personsTable).Where(sq.Eq{"id": personID})
	sqlStr, args, err := queryBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build SQL for DeletePerson: %w", err)
	}
	result, err := db.Exec(sqlStr, args...)
	if err != nil {
		return fmt.Errorf("failed to execute DeletePerson for ID %d: %w", personID, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err == nil && rowsAffected == 0 {
		return sql.ErrNoRows
	}
	if err != nil {
		log.Printf("Warning: Could not get RowsAffected for DeletePerson ID %d: %v", personID, err)
	}
	return nil
}
