package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/flight-reservation/internal/model"
	"github.com/iliyamo/flight-reservation/internal/utils"
)

// CustomerRepo provides access to the customers table.
type CustomerRepo struct{ DB *sql.DB }

func NewCustomerRepo(db *sql.DB) *CustomerRepo { return &CustomerRepo{DB: db} }

// Create hashes password and inserts the customer.
func (r *CustomerRepo) Create(ctx context.Context, c model.Customer, password string, cost int) error {
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx,
		"INSERT INTO customers (cno, password_hash, name, email, passport_number) VALUES (?,?,?,?,?)",
		strings.ToUpper(strings.TrimSpace(c.CNO)), hash, c.Name, strings.ToLower(strings.TrimSpace(c.Email)), c.Passport)
	if isDuplicateKey(err) {
		return ErrDuplicateCustomer
	}
	return err
}

// GetByCNO fetches a customer by customer number.
func (r *CustomerRepo) GetByCNO(ctx context.Context, cno string) (model.Customer, error) {
	var c model.Customer
	var passport sql.NullString
	err := r.DB.QueryRowContext(ctx,
		"SELECT cno,password_hash,name,email,passport_number FROM customers WHERE cno=? LIMIT 1",
		strings.ToUpper(strings.TrimSpace(cno))).Scan(&c.CNO, &c.PasswordHash, &c.Name, &c.Email, &passport)
	if errors.Is(err, sql.ErrNoRows) {
		return c, ErrCustomerNotFound
	}
	if passport.Valid {
		p := passport.String
		c.Passport = &p
	}
	return c, err
}
