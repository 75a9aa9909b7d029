package main

import (
	"log"

	"edufin/models"

	"github.com/gin-gonic/gin"
)

type aidTypeRequest struct {
	Name string `json:"name" binding:"required"`
}

func (a *app) createAidTypeHandler(c *gin.Context) {
	var req aidTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	at := models.FinancialAidType{Name: req.Name}
	if err := a.db.Create(&at).Error; err != nil {
		log.Printf("create aid type %q: %v", req.Name, err)
		fail(c, "Could not create financial aid type")
		return
	}
	ok(c, "Financial aid type created", at)
}

func (a *app) listAidTypesHandler(c *gin.Context) {
	var types []models.FinancialAidType
	if err := a.db.Order("id").Find(&types).Error; err != nil {
		log.Printf("list aid types: %v", err)
		fail(c, "Could not list financial aid types")
		return
	}
	ok(c, "Financial aid types retrieved", types)
}

func (a *app) getAidTypeHandler(c *gin.Context) {
	id, okID := paramID(c, "id")
	if !okID {
		return
	}
	var at models.FinancialAidType
	if err := a.db.First(&at, id).Error; err != nil {
		fail(c, "Financial aid type not found")
		return
	}
	ok(c, "Financial aid type retrieved", at)
}

func (a *app) updateAidTypeHandler(c *gin.Context) {
	id, okID := paramID(c, "id")
	if !okID {
		return
	}
	var req aidTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	var at models.FinancialAidType
	if err := a.db.First(&at, id).Error; err != nil {
		fail(c, "Financial aid type not found")
		return
	}
	at.Name = req.Name
	if err := a.db.Save(&at).Error; err != nil {
		log.Printf("update aid type %d: %v", id, err)
		fail(c, "Could not update financial aid type")
		return
	}
	ok(c, "Financial aid type updated", at)
}

func (a *app) deleteAidTypeHandler(c *gin.Context) {
	id, okID := paramID(c, "id")
	if !okID {
		return
	}
	res := a.db.Delete(&models.FinancialAidType{}, id)
	if res.Error != nil {
		log.Printf("delete aid type %d: %v", id, res.Error)
		fail(c, "Could not delete financial aid type; approved applications may reference it")
		return
	}
	if res.RowsAffected == 0 {
		fail(c, "Financial aid type not found")
		return
	}
	ok(c, "Financial aid type deleted", nil)
}
