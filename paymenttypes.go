package main

import (
	"log"

	"edufin/models"

	"github.com/gin-gonic/gin"
)

type paymentTypeRequest struct {
	Name string `json:"name" binding:"required"`
}

func (a *app) createPaymentTypeHandler(c *gin.Context) {
	var req paymentTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	pt := models.PaymentType{Name: req.Name}
	if err := a.db.Create(&pt).Error; err != nil {
		log.Printf("create payment type %q: %v", req.Name, err)
		fail(c, "Could not create payment category")
		return
	}
	ok(c, "Payment category created", pt)
}

func (a *app) listPaymentTypesHandler(c *gin.Context) {
	var types []models.PaymentType
	if err := a.db.Order("id").Find(&types).Error; err != nil {
		log.Printf("list payment types: %v", err)
		fail(c, "Could not list payment categories")
		return
	}
	ok(c, "Payment categories retrieved", types)
}

func (a *app) getPaymentTypeHandler(c *gin.Context) {
	id, okID := paramID(c, "id")
	if !okID {
		return
	}
	var pt models.PaymentType
	if err := a.db.First(&pt, id).Error; err != nil {
		fail(c, "Payment category not found")
		return
	}
	ok(c, "Payment category retrieved", pt)
}

func (a *app) updatePaymentTypeHandler(c *gin.Context) {
	id, okID := paramID(c, "id")
	if !okID {
		return
	}
	var req paymentTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	var pt models.PaymentType
	if err := a.db.First(&pt, id).Error; err != nil {
		fail(c, "Payment category not found")
		return
	}
	pt.Name = req.Name
	if err := a.db.Save(&pt).Error; err != nil {
		log.Printf("update payment type %d: %v", id, err)
		fail(c, "Could not update payment category")
		return
	}
	ok(c, "Payment category updated", pt)
}

func (a *app) deletePaymentTypeHandler(c *gin.Context) {
	id, okID := paramID(c, "id")
	if !okID {
		return
	}
	res := a.db.Delete(&models.PaymentType{}, id)
	if res.Error != nil {
		log.Printf("delete payment type %d: %v", id, res.Error)
		fail(c, "Could not delete payment category")
		return
	}
	if res.RowsAffected == 0 {
		fail(c, "Payment category not found")
		return
	}
	ok(c, "Payment category deleted", nil)
}
