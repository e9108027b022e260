package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"milanfood-backend/internal/domain"
	"milanfood-backend/internal/session"
)

func (s *Server) handleCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": s.catalog.ListCategories()})
}

func (s *Server) handleProducts(c *gin.Context) {
	products := s.catalog.ListProducts(c.Query("category"), c.Query("q"))
	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (s *Server) handleProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		s.badRequest(c, "product id must be an integer")
		return
	}
	p, ok := s.catalog.Product(id)
	if !ok {
		s.writeError(c, domain.ErrProductNotFound)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) handleCreateSession(c *gin.Context) {
	sess, token, err := s.sessions.Create()
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"sessionId": sess.ID,
		"token":     token,
		"session":   sess.View(),
	})
}

func (s *Server) handleSessionView(c *gin.Context) {
	c.JSON(http.StatusOK, sessionFrom(c).View())
}

type openProductReq struct {
	ProductID *int `json:"productId" binding:"required"`
}

type labelReq struct {
	Label string `json:"label" binding:"required"`
}

type quantityReq struct {
	Quantity int `json:"quantity"`
}

type noteReq struct {
	Note string `json:"note"`
}

type couponReq struct {
	Code string `json:"code"`
}

type payReq struct {
	Method string `json:"method" binding:"required"`
}

func (s *Server) handleOpenProduct(c *gin.Context) {
	var req openProductReq
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, "productId required")
		return
	}
	v, err := sessionFrom(c).OpenProduct(*req.ProductID)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (s *Server) handleSetChoice(c *gin.Context) {
	var req labelReq
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, "label required")
		return
	}
	v, err := sessionFrom(c).SetChoice(req.Label)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (s *Server) handleToggleExtra(c *gin.Context) {
	var req labelReq
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, "label required")
		return
	}
	v, err := sessionFrom(c).ToggleExtra(req.Label)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (s *Server) handleSetQuantity(c *gin.Context) {
	var req quantityReq
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, "invalid json")
		return
	}
	v, err := sessionFrom(c).SetQuantity(req.Quantity)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (s *Server) handleSetNote(c *gin.Context) {
	var req noteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, "invalid json")
		return
	}
	v, err := sessionFrom(c).SetNote(req.Note)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (s *Server) handleCommitSelection(c *gin.Context) {
	cv, err := sessionFrom(c).CommitSelection()
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cv)
}

func (s *Server) handleCancelSelection(c *gin.Context) {
	sessionFrom(c).CancelSelection()
	c.Status(http.StatusNoContent)
}

func (s *Server) handleCart(c *gin.Context) {
	c.JSON(http.StatusOK, sessionFrom(c).Cart())
}

type cartOp int

const (
	cartIncrement cartOp = iota
	cartDecrement
	cartRemove
)

func (s *Server) handleCartItem(op cartOp) gin.HandlerFunc {
	return func(c *gin.Context) {
		idx, err := strconv.Atoi(c.Param("index"))
		if err != nil {
			s.badRequest(c, "index must be an integer")
			return
		}
		sess := sessionFrom(c)
		var cv session.CartView
		switch op {
		case cartIncrement:
			cv, err = sess.Increment(idx)
		case cartDecrement:
			cv, err = sess.Decrement(idx)
		default:
			cv, err = sess.Remove(idx)
		}
		if err != nil {
			s.writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, cv)
	}
}

type checkoutStep int

const (
	stepOpen checkoutStep = iota
	stepContinue
	stepCancel
)

func (s *Server) handleCheckoutStep(step checkoutStep) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessionFrom(c)
		var err error
		var v session.View
		switch step {
		case stepOpen:
			v, err = sess.OpenCart()
		case stepContinue:
			v, err = sess.Continue()
		default:
			v, err = sess.Cancel()
		}
		if err != nil {
			s.writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, v)
	}
}

func (s *Server) handleUpdateCustomer(c *gin.Context) {
	var req domain.Customer
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, "invalid json")
		return
	}
	v, err := sessionFrom(c).UpdateCustomer(req)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

func (s *Server) handleSetCoupon(c *gin.Context) {
	var req couponReq
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, "invalid json")
		return
	}
	v, err := sessionFrom(c).SetCoupon(req.Code)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"couponApplied": v.Cart.CouponApplied, "totals": v.Cart.Totals})
}

func (s *Server) handlePay(c *gin.Context) {
	var req payReq
	if err := c.ShouldBindJSON(&req); err != nil {
		s.badRequest(c, "method required")
		return
	}
	sess := sessionFrom(c)
	o, err := s.sessions.Pay(c.Request.Context(), sess, req.Method)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": o, "session": sess.View()})
}

func (s *Server) handleOrder(c *gin.Context) {
	o, err := s.sessions.Order(c.Request.Context(), sessionFrom(c))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}

func (s *Server) handleProgress(c *gin.Context) {
	pv, err := sessionFrom(c).Progress()
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, pv)
}
