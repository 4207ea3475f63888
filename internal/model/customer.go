package model

import "strings"

// Roles carried in access tokens.
const (
    RoleCustomer = "CUSTOMER"
    RoleAdmin    = "ADMIN"
)

// Customer represents a row in the `customers` table.  Customers log in
// with their customer number and password; only the bcrypt hash of the
// password is stored.
//
// Fields:
//  CNO          – customer number, primary key (e.g. C1001).
//  PasswordHash – bcrypt hash.
//  Name         – display name used in notifications.
//  Email        – address reservation mails are sent to.
//  Passport     – passport number, optional.
type Customer struct {
    CNO          string  // customers.cno
    PasswordHash string  // customers.password_hash
    Name         string  // customers.name
    Email        string  // customers.email
    Passport     *string // customers.passport_number (nullable)
}

// Role derives the access role from the customer number: numbers starting
// with "C0" belong to administrators, other "C" numbers to customers.
func (c Customer) Role() string {
    return RoleForCustomer(c.CNO)
}

// RoleForCustomer is Customer.Role for a bare customer number.  Numbers
// that do not start with "C" get no role at all.
func RoleForCustomer(cno string) string {
    cno = strings.ToUpper(cno)
    switch {
    case strings.HasPrefix(cno, "C0"):
        return RoleAdmin
    case strings.HasPrefix(cno, "C"):
        return RoleCustomer
    }
    return ""
}
