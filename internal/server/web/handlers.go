package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/mochamagic/internal/client/models"
	"github.com/dmitrijs2005/mochamagic/internal/client/services"
	"github.com/dmitrijs2005/mochamagic/internal/common"
	"github.com/gin-gonic/gin"
)

type signupRequest struct {
	Fullname        string `json:"fullname"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type loginRequest struct {
	Identifier string `json:"identifier"`
	Email      string `json:"email"`
	Password   string `json:"password"`
}

type addItemRequest struct {
	Name  string   `json:"name"`
	Price *float64 `json:"price"`
}

type quantityRequest struct {
	Quantity *int `json:"quantity"`
}

type redeemRequest struct {
	Choice  string `json:"choice"`
	Confirm bool   `json:"confirm"`
}

// respond writes body with whatever banner and redirect the workflow recorded.
func (s *Server) respond(c *gin.Context, code int, body gin.H) {
	banner, redirect := s.rec.Take()
	if body == nil {
		body = gin.H{}
	}
	if banner != nil {
		body["banner"] = banner
	}
	if redirect != nil {
		body["redirect"] = redirect
	}
	c.JSON(code, body)
}

func (s *Server) fail(c *gin.Context, err error) {
	code, msg := statusFor(err)
	if code == http.StatusInternalServerError {
		s.logger.Error(c.Request.Context(), "request failed", "path", c.FullPath(), "error", err)
	}
	s.respond(c, code, gin.H{"error": msg})
}

func bind(c *gin.Context, v any) error {
	if err := c.ShouldBindJSON(v); err != nil {
		return errMalformedBody
	}
	return nil
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) signup(c *gin.Context) {
	var req signupRequest
	if err := bind(c, &req); err != nil {
		s.fail(c, err)
		return
	}

	u, err := s.svc.Auth.Signup(c.Request.Context(), services.SignupRequest{
		Fullname:        req.Fullname,
		Email:           req.Email,
		Password:        []byte(req.Password),
		ConfirmPassword: []byte(req.ConfirmPassword),
	})
	if err != nil {
		s.fail(c, err)
		return
	}

	s.respond(c, http.StatusCreated, gin.H{"user": models.NewSession(*u, "")})
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := bind(c, &req); err != nil {
		s.fail(c, err)
		return
	}
	identifier := req.Identifier
	if identifier == "" {
		identifier = req.Email
	}

	session, err := s.svc.Auth.Login(c.Request.Context(), identifier, []byte(req.Password))
	if err != nil {
		s.fail(c, err)
		return
	}

	s.respond(c, http.StatusOK, gin.H{"session": session})
}

func (s *Server) logout(c *gin.Context) {
	if err := s.svc.Auth.Logout(c.Request.Context()); err != nil {
		s.fail(c, err)
		return
	}
	s.respond(c, http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) updateProfile(c *gin.Context) {
	var p models.Profile
	if err := bind(c, &p); err != nil {
		s.fail(c, err)
		return
	}

	session, err := s.svc.Auth.UpdateProfile(c.Request.Context(), p)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.respond(c, http.StatusOK, gin.H{"session": session})
}

func (s *Server) menu(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": models.Menu()})
}

// cartBody renders the cart with its badge count and total.
func (s *Server) cartBody(c *gin.Context) (gin.H, error) {
	ctx := c.Request.Context()

	items, err := s.svc.Cart.Items(ctx)
	if err != nil {
		return nil, err
	}
	count, err := s.svc.Cart.TotalCount(ctx)
	if err != nil {
		return nil, err
	}
	total, err := s.svc.Cart.TotalPrice(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.CartItem{}
	}
	return gin.H{"items": items, "count": count, "total": total}, nil
}

func (s *Server) writeCart(c *gin.Context, code int) {
	body, err := s.cartBody(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.respond(c, code, body)
}

func (s *Server) getCart(c *gin.Context) {
	s.writeCart(c, http.StatusOK)
}

func (s *Server) clearCart(c *gin.Context) {
	if err := s.svc.Cart.Clear(c.Request.Context()); err != nil {
		s.fail(c, err)
		return
	}
	s.writeCart(c, http.StatusOK)
}

func (s *Server) addItem(c *gin.Context) {
	var req addItemRequest
	if err := bind(c, &req); err != nil {
		s.fail(c, err)
		return
	}

	item := models.CartItem{Name: strings.TrimSpace(req.Name)}
	if item.Name == "" {
		s.fail(c, errItemName)
		return
	}
	switch {
	case req.Price != nil:
		item.Price = *req.Price
	default:
		m, ok := models.MenuItemByName(item.Name)
		if !ok {
			s.fail(c, errItemPrice)
			return
		}
		item.Price = m.Price
	}
	if item.Price < 0 {
		s.fail(c, errItemPrice)
		return
	}

	if err := s.svc.Cart.Add(c.Request.Context(), item); err != nil {
		s.fail(c, err)
		return
	}
	s.writeCart(c, http.StatusCreated)
}

func (s *Server) updateItem(c *gin.Context) {
	var req quantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, errBadQuantity)
		return
	}
	if req.Quantity == nil {
		s.fail(c, errMissingQuantity)
		return
	}

	if err := s.svc.Cart.UpdateQuantity(c.Request.Context(), c.Param("name"), *req.Quantity); err != nil {
		s.fail(c, err)
		return
	}
	s.writeCart(c, http.StatusOK)
}

func (s *Server) removeItem(c *gin.Context) {
	if err := s.svc.Cart.Remove(c.Request.Context(), c.Param("name")); err != nil {
		s.fail(c, err)
		return
	}
	s.writeCart(c, http.StatusOK)
}

func (s *Server) rewardsPage(c *gin.Context) {
	view, err := s.svc.Rewards.View(c.Request.Context(), s.svc.API)
	if err != nil {
		s.fail(c, err)
		return
	}
	if view.Activity == nil {
		view.Activity = []string{}
	}
	if view.Tiers == nil {
		view.Tiers = []models.Tier{}
	}
	s.respond(c, http.StatusOK, gin.H{"rewards": view})
}

func (s *Server) redeem(c *gin.Context) {
	var req redeemRequest
	if err := bind(c, &req); err != nil {
		s.fail(c, err)
		return
	}

	r, err := s.svc.Rewards.Redeem(c.Request.Context(), req.Choice, func(models.Tier) bool { return req.Confirm })
	if errors.Is(err, common.ErrRedemptionCancelled) {
		s.respond(c, http.StatusOK, gin.H{"cancelled": true})
		return
	}
	if err != nil {
		s.fail(c, err)
		return
	}
	s.respond(c, http.StatusOK, gin.H{"redemption": r})
}

func (s *Server) checkout(c *gin.Context) {
	var req services.CheckoutRequest
	if err := bind(c, &req); err != nil {
		s.fail(c, err)
		return
	}

	order, err := s.svc.Checkout.Checkout(c.Request.Context(), req)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.respond(c, http.StatusCreated, gin.H{"order": order})
}

func (s *Server) orders(c *gin.Context) {
	list, err := s.svc.Checkout.Orders(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	if list == nil {
		list = []models.Order{}
	}
	s.respond(c, http.StatusOK, gin.H{"orders": list})
}

func (s *Server) order(c *gin.Context) {
	o, err := s.svc.Checkout.Order(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	s.respond(c, http.StatusOK, gin.H{"order": o})
}

func (s *Server) cancelOrder(c *gin.Context) {
	o, err := s.svc.Checkout.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	s.respond(c, http.StatusOK, gin.H{"order": o})
}
