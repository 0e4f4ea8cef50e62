package routes

import (
	"listing-reservations-server/models"
	"listing-reservations-server/storage"
	"listing-reservations-server/utils"

	"github.com/kataras/iris/v12"
)

type RegisterRenterInput struct {
	FirstName string `json:"firstName" validate:"required,max=256"`
	LastName  string `json:"lastName" validate:"required,max=256"`
	Email     string `json:"email" validate:"required,max=256,email"`
	Role      string `json:"role" validate:"omitempty,oneof=renter host"`
}

// RegisterRenter creates a renter account and returns a token pair.
func RegisterRenter(ctx iris.Context) {
	var input RegisterRenterInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var existing models.Renter
	res := storage.DB.Where("email = ?", input.Email).Find(&existing)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if res.RowsAffected > 0 {
		utils.CreateError(iris.StatusConflict, "Conflict", "renter already registered", ctx)
		return
	}

	renter := models.Renter{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Role:      input.Role,
	}

	if err := storage.DB.Create(&renter).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	tokenPair, err := utils.CreateTokenPair(renter.ID)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.StatusCode(iris.StatusCreated)
	ctx.JSON(iris.Map{
		"ID":           renter.ID,
		"firstName":    renter.FirstName,
		"lastName":     renter.LastName,
		"email":        renter.Email,
		"accessToken":  string(tokenPair.AccessToken),
		"refreshToken": string(tokenPair.RefreshToken),
	})
}
