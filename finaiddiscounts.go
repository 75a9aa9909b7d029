package main

import (
	"log"

	"edufin/models"

	"github.com/gin-gonic/gin"
)

type aidDiscountRequest struct {
	Name               string `json:"name" binding:"required"`
	BillTypeID         uint   `json:"billTypeId" binding:"required"`
	FinancialAidTypeID uint   `json:"financialAidTypeId" binding:"required"`
	Amount             int64  `json:"amount" binding:"required,gt=0"` // minor units
}

type aidDiscountResponse struct {
	ID                   uint         `json:"id"`
	Name                 string       `json:"name"`
	BillTypeID           uint         `json:"billTypeId"`
	BillTypeName         string       `json:"billTypeName"`
	FinancialAidTypeID   uint         `json:"financialAidTypeId"`
	FinancialAidTypeName string       `json:"financialAidTypeName"`
	Amount               models.Money `json:"amount"`
}

func aidDiscountToResponse(d models.FinancialAidDiscount) aidDiscountResponse {
	return aidDiscountResponse{
		ID:                   d.ID,
		Name:                 d.Name,
		BillTypeID:           d.BillTypeID,
		BillTypeName:         d.BillType.Name,
		FinancialAidTypeID:   d.FinancialAidTypeID,
		FinancialAidTypeName: d.FinancialAidType.Name,
		Amount:               d.Amount,
	}
}

func (a *app) createAidDiscountHandler(c *gin.Context) {
	var req aidDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	var billType models.BillType
	if err := a.db.First(&billType, req.BillTypeID).Error; err != nil {
		fail(c, "Bill type not found")
		return
	}
	var aidType models.FinancialAidType
	if err := a.db.First(&aidType, req.FinancialAidTypeID).Error; err != nil {
		fail(c, "Financial aid type not found")
		return
	}

	discount := models.FinancialAidDiscount{
		Name:               req.Name,
		BillTypeID:         billType.ID,
		FinancialAidTypeID: aidType.ID,
		Amount:             models.MoneyFromMinor(req.Amount),
		BillType:           billType,
		FinancialAidType:   aidType,
	}
	if err := a.db.Create(&discount).Error; err != nil {
		log.Printf("create aid discount %q: %v", req.Name, err)
		fail(c, "Could not create discount")
		return
	}
	ok(c, "Discount created", aidDiscountToResponse(discount))
}

func (a *app) listAidDiscountsHandler(c *gin.Context) {
	var discounts []models.FinancialAidDiscount
	err := a.db.Preload("BillType").Preload("FinancialAidType").
		Order("id").Find(&discounts).Error
	if err != nil {
		log.Printf("list aid discounts: %v", err)
		fail(c, "Could not list discounts")
		return
	}
	out := make([]aidDiscountResponse, 0, len(discounts))
	for _, d := range discounts {
		out = append(out, aidDiscountToResponse(d))
	}
	ok(c, "Discounts retrieved", out)
}

func (a *app) getAidDiscountHandler(c *gin.Context) {
	id, okID := paramID(c, "id")
	if !okID {
		return
	}
	var discount models.FinancialAidDiscount
	err := a.db.Preload("BillType").Preload("FinancialAidType").First(&discount, id).Error
	if err != nil {
		fail(c, "Discount not found")
		return
	}
	ok(c, "Discount retrieved", aidDiscountToResponse(discount))
}

type updateAidDiscountRequest struct {
	Name               *string `json:"name"`
	BillTypeID         *uint   `json:"billTypeId"`
	FinancialAidTypeID *uint   `json:"financialAidTypeId"`
	Amount             *int64  `json:"amount"` // minor units
}

func (a *app) updateAidDiscountHandler(c *gin.Context) {
	id, okID := paramID(c, "id")
	if !okID {
		return
	}
	var req updateAidDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	var discount models.FinancialAidDiscount
	if err := a.db.First(&discount, id).Error; err != nil {
		fail(c, "Discount not found")
		return
	}
	if req.Name != nil {
		discount.Name = *req.Name
	}
	if req.BillTypeID != nil {
		if err := a.db.First(&models.BillType{}, *req.BillTypeID).Error; err != nil {
			fail(c, "Bill type not found")
			return
		}
		discount.BillTypeID = *req.BillTypeID
	}
	if req.FinancialAidTypeID != nil {
		if err := a.db.First(&models.FinancialAidType{}, *req.FinancialAidTypeID).Error; err != nil {
			fail(c, "Financial aid type not found")
			return
		}
		discount.FinancialAidTypeID = *req.FinancialAidTypeID
	}
	if req.Amount != nil {
		discount.Amount = models.MoneyFromMinor(*req.Amount)
	}
	if err := a.db.Save(&discount).Error; err != nil {
		log.Printf("update aid discount %d: %v", id, err)
		fail(c, "Could not update discount")
		return
	}
	a.db.Preload("BillType").Preload("FinancialAidType").First(&discount, id)
	ok(c, "Discount updated", aidDiscountToResponse(discount))
}

func (a *app) deleteAidDiscountHandler(c *gin.Context) {
	id, okID := paramID(c, "id")
	if !okID {
		return
	}
	res := a.db.Delete(&models.FinancialAidDiscount{}, id)
	if res.Error != nil {
		log.Printf("delete aid discount %d: %v", id, res.Error)
		fail(c, "Could not delete discount")
		return
	}
	if res.RowsAffected == 0 {
		fail(c, "Discount not found")
		return
	}
	ok(c, "Discount deleted", nil)
}
