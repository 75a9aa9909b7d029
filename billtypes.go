package main

import (
	"log"

	"edufin/models"

	"github.com/gin-gonic/gin"
)

type billTypeRequest struct {
	Name        string `json:"name" binding:"required"`
	ProgrammeID uint   `json:"programmeId" binding:"required"`
}

type billTypeResponse struct {
	ID            uint   `json:"id"`
	Name          string `json:"name"`
	ProgrammeID   uint   `json:"programmeId"`
	ProgrammeName string `json:"programmeName"`
}

func billTypeToResponse(bt models.BillType) billTypeResponse {
	return billTypeResponse{
		ID:            bt.ID,
		Name:          bt.Name,
		ProgrammeID:   bt.ProgrammeID,
		ProgrammeName: bt.Programme.Name,
	}
}

func (a *app) createBillTypeHandler(c *gin.Context) {
	var req billTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	var programme models.Programme
	if err := a.db.First(&programme, req.ProgrammeID).Error; err != nil {
		fail(c, "Programme not found")
		return
	}

	bt := models.BillType{Name: req.Name, ProgrammeID: programme.ID, Programme: programme}
	if err := a.db.Create(&bt).Error; err != nil {
		log.Printf("create bill type %q: %v", req.Name, err)
		fail(c, "Could not create bill type")
		return
	}
	ok(c, "Bill type created", billTypeToResponse(bt))
}

func (a *app) listBillTypesHandler(c *gin.Context) {
	var billTypes []models.BillType
	if err := a.db.Preload("Programme").Order("id").Find(&billTypes).Error; err != nil {
		log.Printf("list bill types: %v", err)
		fail(c, "Could not list bill types")
		return
	}
	out := make([]billTypeResponse, 0, len(billTypes))
	for _, bt := range billTypes {
		out = append(out, billTypeToResponse(bt))
	}
	ok(c, "Bill types retrieved", out)
}

func (a *app) getBillTypeHandler(c *gin.Context) {
	id, okID := paramID(c, "id")
	if !okID {
		return
	}
	var bt models.BillType
	if err := a.db.Preload("Programme").First(&bt, id).Error; err != nil {
		fail(c, "Bill type not found")
		return
	}
	ok(c, "Bill type retrieved", billTypeToResponse(bt))
}

type updateBillTypeRequest struct {
	Name        *string `json:"name"`
	ProgrammeID *uint   `json:"programmeId"`
}

func (a *app) updateBillTypeHandler(c *gin.Context) {
	id, okID := paramID(c, "id")
	if !okID {
		return
	}
	var req updateBillTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	var bt models.BillType
	if err := a.db.First(&bt, id).Error; err != nil {
		fail(c, "Bill type not found")
		return
	}
	if req.Name != nil {
		bt.Name = *req.Name
	}
	if req.ProgrammeID != nil {
		var programme models.Programme
		if err := a.db.First(&programme, *req.ProgrammeID).Error; err != nil {
			fail(c, "Programme not found")
			return
		}
		bt.ProgrammeID = programme.ID
	}
	if err := a.db.Save(&bt).Error; err != nil {
		log.Printf("update bill type %d: %v", id, err)
		fail(c, "Could not update bill type")
		return
	}
	a.db.Preload("Programme").First(&bt, id)
	ok(c, "Bill type updated", billTypeToResponse(bt))
}

func (a *app) deleteBillTypeHandler(c *gin.Context) {
	id, okID := paramID(c, "id")
	if !okID {
		return
	}
	res := a.db.Delete(&models.BillType{}, id)
	if res.Error != nil {
		log.Printf("delete bill type %d: %v", id, res.Error)
		fail(c, "Could not delete bill type; bills may still reference it")
		return
	}
	if res.RowsAffected == 0 {
		fail(c, "Bill type not found")
		return
	}
	ok(c, "Bill type deleted", nil)
}
