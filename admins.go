package main

import (
	"fmt"
	"log"

	"edufin/models"
	"edufin/pkg/mailer"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type createAdminRequest struct {
	Email       string   `json:"email" binding:"required,email"`
	FirstName   string   `json:"firstName" binding:"required"`
	LastName    string   `json:"lastName" binding:"required"`
	Permissions []string `json:"permissions"`
}

type adminResponse struct {
	ID          uint     `json:"id"`
	Email       string   `json:"email"`
	FirstName   string   `json:"firstName"`
	LastName    string   `json:"lastName"`
	Permissions []string `json:"permissions"`
}

func adminToResponse(u models.User) adminResponse {
	resp := adminResponse{ID: u.ID, Email: u.Email, Permissions: u.PermissionNames()}
	if u.AdminDetails != nil {
		resp.FirstName = u.AdminDetails.FirstName
		resp.LastName = u.AdminDetails.LastName
	}
	return resp
}

func (a *app) createAdminHandler(c *gin.Context) {
	var req createAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	password, err := randomPassword()
	if err != nil {
		fail(c, "Could not create admin")
		return
	}
	hashed, err := hashPassword(password)
	if err != nil {
		fail(c, "Could not create admin")
		return
	}

	user := models.User{
		Email:          req.Email,
		HashedPassword: hashed,
		Role:           models.RoleAdmin,
		AdminDetails:   &models.AdminDetails{FirstName: req.FirstName, LastName: req.LastName},
	}

	err = a.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return syncPermissions(tx, user.ID, req.Permissions)
	})
	if err != nil {
		log.Printf("create admin %s: %v", req.Email, err)
		fail(c, "Could not create admin")
		return
	}

	if err := a.mailer.Send(mailer.Message{
		To:      req.Email,
		Subject: "Welcome",
		HTML: mailer.NewUserEmail(req.FirstName, req.LastName, req.Email,
			fmt.Sprintf("%s/login", a.cfg.FEDomain), password),
	}); err != nil {
		log.Printf("create admin %s: welcome email: %v", req.Email, err)
	}

	a.db.Preload("Permissions").First(&user, user.ID)
	ok(c, "Admin created", adminToResponse(user))
}

func (a *app) listAdminsHandler(c *gin.Context) {
	var users []models.User
	err := a.db.Preload("AdminDetails").Preload("Permissions").
		Where("role = ?", models.RoleAdmin).Order("id").Find(&users).Error
	if err != nil {
		log.Printf("list admins: %v", err)
		fail(c, "Could not list admins")
		return
	}
	out := make([]adminResponse, 0, len(users))
	for _, u := range users {
		out = append(out, adminToResponse(u))
	}
	ok(c, "Admins retrieved", out)
}

func (a *app) getAdminHandler(c *gin.Context) {
	id, okID := paramID(c, "id")
	if !okID {
		return
	}
	var user models.User
	err := a.db.Preload("AdminDetails").Preload("Permissions").
		Where("role = ?", models.RoleAdmin).First(&user, id).Error
	if err != nil {
		fail(c, "Admin not found")
		return
	}
	ok(c, "Admin retrieved", adminToResponse(user))
}

type updateAdminRequest struct {
	FirstName   *string   `json:"firstName"`
	LastName    *string   `json:"lastName"`
	Permissions *[]string `json:"permissions"`
}

func (a *app) updateAdminHandler(c *gin.Context) {
	id, okID := paramID(c, "id")
	if !okID {
		return
	}
	var req updateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	var user models.User
	if err := a.db.Preload("AdminDetails").Where("role = ?", models.RoleAdmin).First(&user, id).Error; err != nil {
		fail(c, "Admin not found")
		return
	}

	err := a.db.Transaction(func(tx *gorm.DB) error {
		if user.AdminDetails != nil && (req.FirstName != nil || req.LastName != nil) {
			if req.FirstName != nil {
				user.AdminDetails.FirstName = *req.FirstName
			}
			if req.LastName != nil {
				user.AdminDetails.LastName = *req.LastName
			}
			if err := tx.Save(user.AdminDetails).Error; err != nil {
				return err
			}
		}
		if req.Permissions != nil {
			return syncPermissions(tx, user.ID, *req.Permissions)
		}
		return nil
	})
	if err != nil {
		log.Printf("update admin %d: %v", id, err)
		fail(c, "Could not update admin")
		return
	}

	a.db.Preload("AdminDetails").Preload("Permissions").First(&user, id)
	ok(c, "Admin updated", adminToResponse(user))
}

type replacePermissionsRequest struct {
	Permissions []string `json:"permissions" binding:"required"`
}

// replaceAdminPermissionsHandler swaps the whole assignment set atomically.
func (a *app) replaceAdminPermissionsHandler(c *gin.Context) {
	id, okID := paramID(c, "id")
	if !okID {
		return
	}
	var req replacePermissionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	var user models.User
	if err := a.db.Where("role = ?", models.RoleAdmin).First(&user, id).Error; err != nil {
		fail(c, "Admin not found")
		return
	}

	err := a.db.Transaction(func(tx *gorm.DB) error {
		return syncPermissions(tx, user.ID, req.Permissions)
	})
	if err != nil {
		log.Printf("replace permissions for admin %d: %v", id, err)
		fail(c, "Could not update permissions")
		return
	}

	a.db.Preload("AdminDetails").Preload("Permissions").First(&user, id)
	ok(c, "Permissions updated", adminToResponse(user))
}

func (a *app) deleteAdminHandler(c *gin.Context) {
	id, okID := paramID(c, "id")
	if !okID {
		return
	}
	res := a.db.Where("role = ?", models.RoleAdmin).Delete(&models.User{}, id)
	if res.Error != nil {
		log.Printf("delete admin %d: %v", id, res.Error)
		fail(c, "Could not delete admin")
		return
	}
	if res.RowsAffected == 0 {
		fail(c, "Admin not found")
		return
	}
	ok(c, "Admin deleted", nil)
}

// syncPermissions replaces a user's permission rows with the named set.
// Unknown names are an error so typos surface instead of silently dropping.
func syncPermissions(tx *gorm.DB, userID uint, names []string) error {
	if err := tx.Where("user_id = ?", userID).Delete(&models.UserPermission{}).Error; err != nil {
		return err
	}
	for _, name := range names {
		var perm models.Permission
		if err := tx.Where("name = ?", name).First(&perm).Error; err != nil {
			return fmt.Errorf("unknown permission %q: %w", name, err)
		}
		if err := tx.Create(&models.UserPermission{UserID: userID, PermissionID: perm.ID}).Error; err != nil {
			return err
		}
	}
	return nil
}
