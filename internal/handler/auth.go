package handler

import (
    "errors"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/flight-reservation/internal/config"
    "github.com/iliyamo/flight-reservation/internal/middleware"
    "github.com/iliyamo/flight-reservation/internal/model"
    "github.com/iliyamo/flight-reservation/internal/repository"
    "github.com/iliyamo/flight-reservation/internal/utils"
)

// AuthHandler registers customers and issues access tokens.
type AuthHandler struct {
    Cfg       config.Config
    Customers *repository.CustomerRepo
}

func NewAuthHandler(cfg config.Config, customers *repository.CustomerRepo) *AuthHandler {
    return &AuthHandler{Cfg: cfg, Customers: customers}
}

type registerReq struct {
    CNO      string  `json:"cno"`
    Password string  `json:"password"`
    Name     string  `json:"name"`
    Email    string  `json:"email"`
    Passport *string `json:"passport_number"`
}

type loginReq struct {
    CNO      string `json:"cno"`
    Password string `json:"password"`
}

type customerPart struct {
    CNO   string `json:"cno"`
    Name  string `json:"name"`
    Email string `json:"email"`
    Role  string `json:"role"`
}

type tokenPart struct {
    Token   string    `json:"token"`
    Expires time.Time `json:"expires"`
}

type authResp struct {
    Success  bool         `json:"success"`
    Customer customerPart `json:"customer"`
    Access   tokenPart    `json:"access"`
}

func partOf(c model.Customer) customerPart {
    return customerPart{CNO: c.CNO, Name: c.Name, Email: c.Email, Role: c.Role()}
}

// Register creates a customer account.  Customer numbers must start with
// "C" and must not fall in the administrator "C0" range.
func (h *AuthHandler) Register(c echo.Context) error {
    var req registerReq
    if err := c.Bind(&req); err != nil {
        return badRequest(c, "invalid body")
    }
    req.CNO = strings.ToUpper(strings.TrimSpace(req.CNO))
    req.Email = strings.ToLower(strings.TrimSpace(req.Email))
    req.Name = strings.TrimSpace(req.Name)
    if req.CNO == "" || req.Password == "" || req.Name == "" || req.Email == "" {
        return badRequest(c, "cno, password, name and email are required")
    }
    switch model.RoleForCustomer(req.CNO) {
    case "":
        return badRequest(c, "customer number must start with C")
    case model.RoleAdmin:
        // administrator accounts are provisioned in the database only
        return c.JSON(http.StatusForbidden, echo.Map{"success": false, "message": "administrator accounts cannot be registered"})
    }

    ctx, cancel := withTimeout(c)
    defer cancel()

    cust := model.Customer{CNO: req.CNO, Name: req.Name, Email: req.Email, Passport: req.Passport}
    if err := h.Customers.Create(ctx, cust, req.Password, h.Cfg.BcryptCost); err != nil {
        if errors.Is(err, repository.ErrDuplicateCustomer) {
            return c.JSON(http.StatusConflict, echo.Map{"success": false, "message": "customer already exists"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "create customer failed"})
    }
    return h.issue(c, http.StatusCreated, cust)
}

// Login verifies the customer number and password and returns an access
// token.
func (h *AuthHandler) Login(c echo.Context) error {
    var req loginReq
    if err := c.Bind(&req); err != nil {
        return badRequest(c, "invalid body")
    }
    if strings.TrimSpace(req.CNO) == "" || req.Password == "" {
        return badRequest(c, "cno and password are required")
    }

    ctx, cancel := withTimeout(c)
    defer cancel()

    cust, err := h.Customers.GetByCNO(ctx, req.CNO)
    if errors.Is(err, repository.ErrCustomerNotFound) {
        return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "invalid credentials"})
    }
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "query failed"})
    }
    if !utils.VerifyPassword(cust.PasswordHash, req.Password) || cust.Role() == "" {
        return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "invalid credentials"})
    }
    return h.issue(c, http.StatusOK, cust)
}

func (h *AuthHandler) issue(c echo.Context, status int, cust model.Customer) error {
    access, err := utils.NewAccessToken(h.Cfg.JWTSecret, cust.CNO, cust.Role(), h.Cfg.AccessTTLMin)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "issue access failed"})
    }
    return c.JSON(status, authResp{
        Success:  true,
        Customer: partOf(cust),
        Access:   tokenPart{Token: access.Token, Expires: access.Exp},
    })
}

// Me returns the authenticated customer's profile.
func (h *AuthHandler) Me(c echo.Context) error {
    ctx, cancel := withTimeout(c)
    defer cancel()

    cust, err := h.Customers.GetByCNO(ctx, middleware.CustomerID(c))
    if errors.Is(err, repository.ErrCustomerNotFound) {
        return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "customer not found"})
    }
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "query failed"})
    }
    return c.JSON(http.StatusOK, echo.Map{"success": true, "customer": partOf(cust), "passport_number": cust.Passport})
}
