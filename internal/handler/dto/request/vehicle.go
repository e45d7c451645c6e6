package request

type RegisterVehicleRequest struct {
	Plate string `json:"license_plate" binding:"required"`
	Type  string `json:"vehicle_type" binding:"required"`
}
