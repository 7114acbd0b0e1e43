package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"rentwheels/internal/apperr"
	"rentwheels/internal/respond"
	"rentwheels/internal/services"
)

type VehicleController struct {
	vehicles *services.VehicleService
}

func NewVehicleController(vehicles *services.VehicleService) *VehicleController {
	return &VehicleController{vehicles: vehicles}
}

func (ct *VehicleController) Create(c *gin.Context) {
	var input services.CreateVehicleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respond.Error(c, apperr.InvalidInput("Invalid vehicle input"))
		return
	}

	vehicle, err := ct.vehicles.CreateVehicle(c.Request.Context(), input)
	if err != nil {
		respond.Error(c, err)
		return
	}

	respond.Created(c, "Vehicle created successfully", gin.H{"vehicle": vehicle})
}

func (ct *VehicleController) List(c *gin.Context) {
	vehicles, err := ct.vehicles.ListVehicles(c.Request.Context())
	if err != nil {
		respond.Error(c, err)
		return
	}

	respond.OK(c, "Vehicles retrieved successfully", vehicles)
}

func (ct *VehicleController) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	vehicle, err := ct.vehicles.GetVehicleByID(c.Request.Context(), id)
	if err != nil {
		respond.Error(c, err)
		return
	}

	respond.OK(c, "Vehicle retrieved successfully", gin.H{"vehicle": vehicle})
}

func (ct *VehicleController) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	var patch services.VehiclePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respond.Error(c, apperr.InvalidInput("Invalid vehicle input"))
		return
	}

	vehicle, err := ct.vehicles.UpdateVehicle(c.Request.Context(), id, patch)
	if err != nil {
		respond.Error(c, err)
		return
	}

	respond.OK(c, "Vehicle updated successfully", gin.H{"vehicle": vehicle})
}

func (ct *VehicleController) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := ct.vehicles.DeleteVehicle(c.Request.Context(), id); err != nil {
		respond.Error(c, err)
		return
	}

	respond.OK(c, "Vehicle deleted successfully", nil)
}

// paramID parses the :id route parameter, answering a 404 for garbage ids so
// /vehicles/abc behaves the same as a missing row.
func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respond.Error(c, apperr.NotFound("Resource not found"))
		return 0, false
	}
	return uint(id), true
}
