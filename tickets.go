package main

import (
	"log"
	"time"

	"edufin/models"

	"github.com/gin-gonic/gin"
)

type ticketCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

func (a *app) createTicketCategoryHandler(c *gin.Context) {
	var req ticketCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	category := models.SupportTicketCategory{Name: req.Name}
	if err := a.db.Create(&category).Error; err != nil {
		log.Printf("create ticket category %q: %v", req.Name, err)
		fail(c, "Could not create ticket category")
		return
	}
	ok(c, "Ticket category created", category)
}

func (a *app) listTicketCategoriesHandler(c *gin.Context) {
	var categories []models.SupportTicketCategory
	if err := a.db.Order("id").Find(&categories).Error; err != nil {
		log.Printf("list ticket categories: %v", err)
		fail(c, "Could not list ticket categories")
		return
	}
	ok(c, "Ticket categories retrieved", categories)
}

func (a *app) updateTicketCategoryHandler(c *gin.Context) {
	id, okID := paramID(c, "id")
	if !okID {
		return
	}
	var req ticketCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	var category models.SupportTicketCategory
	if err := a.db.First(&category, id).Error; err != nil {
		fail(c, "Ticket category not found")
		return
	}
	category.Name = req.Name
	if err := a.db.Save(&category).Error; err != nil {
		log.Printf("update ticket category %d: %v", id, err)
		fail(c, "Could not update ticket category")
		return
	}
	ok(c, "Ticket category updated", category)
}

func (a *app) deleteTicketCategoryHandler(c *gin.Context) {
	id, okID := paramID(c, "id")
	if !okID {
		return
	}
	res := a.db.Delete(&models.SupportTicketCategory{}, id)
	if res.Error != nil {
		log.Printf("delete ticket category %d: %v", id, res.Error)
		fail(c, "Could not delete ticket category; tickets may still reference it")
		return
	}
	if res.RowsAffected == 0 {
		fail(c, "Ticket category not found")
		return
	}
	ok(c, "Ticket category deleted", nil)
}

type createTicketRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	CategoryID  uint   `json:"categoryId" binding:"required"`
	InquirerID  uint   `json:"inquirerId" binding:"required"`
}

type ticketResponse struct {
	ID           uint      `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	CategoryName string    `json:"categoryName"`
	Status       string    `json:"status"`
	InquirerID   uint      `json:"inquirerId"`
	HandlerID    *uint     `json:"handlerId"`
	CreatedAt    time.Time `json:"createdAt"`
}

func ticketToResponse(t models.SupportTicket) ticketResponse {
	return ticketResponse{
		ID:           t.ID,
		Title:        t.Title,
		Description:  t.Description,
		CategoryName: t.Category.Name,
		Status:       t.Status,
		InquirerID:   t.InquirerID,
		HandlerID:    t.HandlerID,
		CreatedAt:    t.CreatedAt,
	}
}

func (a *app) createTicketHandler(c *gin.Context) {
	var req createTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	var category models.SupportTicketCategory
	if err := a.db.First(&category, req.CategoryID).Error; err != nil {
		fail(c, "Ticket category not found")
		return
	}
	var inquirer models.User
	if err := a.db.First(&inquirer, req.InquirerID).Error; err != nil {
		fail(c, "Inquirer not found")
		return
	}

	ticket := models.SupportTicket{
		Title:       req.Title,
		Description: req.Description,
		CategoryID:  category.ID,
		InquirerID:  inquirer.ID,
		Status:      models.TicketPending,
		Category:    category,
	}
	if err := a.db.Create(&ticket).Error; err != nil {
		log.Printf("create ticket %q: %v", req.Title, err)
		fail(c, "Could not create ticket")
		return
	}
	ok(c, "Ticket created", ticketToResponse(ticket))
}

func (a *app) listTicketsHandler(c *gin.Context) {
	var tickets []models.SupportTicket
	if err := a.db.Preload("Category").Order("id desc").Find(&tickets).Error; err != nil {
		log.Printf("list tickets: %v", err)
		fail(c, "Could not list tickets")
		return
	}
	out := make([]ticketResponse, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, ticketToResponse(t))
	}
	ok(c, "Tickets retrieved", out)
}

func (a *app) getTicketHandler(c *gin.Context) {
	id, okID := paramID(c, "id")
	if !okID {
		return
	}
	var ticket models.SupportTicket
	if err := a.db.Preload("Category").First(&ticket, id).Error; err != nil {
		fail(c, "Ticket not found")
		return
	}
	ok(c, "Ticket retrieved", ticketToResponse(ticket))
}

type updateTicketRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	CategoryID  *uint   `json:"categoryId"`
	HandlerID   *uint   `json:"handlerId"`
	Status      *string `json:"status" binding:"omitempty,oneof=pending active resolved"`
}

func (a *app) updateTicketHandler(c *gin.Context) {
	id, okID := paramID(c, "id")
	if !okID {
		return
	}
	var req updateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	var ticket models.SupportTicket
	if err := a.db.First(&ticket, id).Error; err != nil {
		fail(c, "Ticket not found")
		return
	}
	if req.Title != nil {
		ticket.Title = *req.Title
	}
	if req.Description != nil {
		ticket.Description = *req.Description
	}
	if req.CategoryID != nil {
		if err := a.db.First(&models.SupportTicketCategory{}, *req.CategoryID).Error; err != nil {
			fail(c, "Ticket category not found")
			return
		}
		ticket.CategoryID = *req.CategoryID
	}
	if req.HandlerID != nil {
		if err := a.db.First(&models.User{}, *req.HandlerID).Error; err != nil {
			fail(c, "Handler not found")
			return
		}
		ticket.HandlerID = req.HandlerID
	}
	if req.Status != nil {
		ticket.Status = *req.Status
	}
	if err := a.db.Save(&ticket).Error; err != nil {
		log.Printf("update ticket %d: %v", id, err)
		fail(c, "Could not update ticket")
		return
	}
	a.db.Preload("Category").First(&ticket, id)
	ok(c, "Ticket updated", ticketToResponse(ticket))
}

func (a *app) deleteTicketHandler(c *gin.Context) {
	id, okID := paramID(c, "id")
	if !okID {
		return
	}
	res := a.db.Delete(&models.SupportTicket{}, id)
	if res.Error != nil {
		log.Printf("delete ticket %d: %v", id, res.Error)
		fail(c, "Could not delete ticket")
		return
	}
	if res.RowsAffected == 0 {
		fail(c, "Ticket not found")
		return
	}
	ok(c, "Ticket deleted", nil)
}
