package handler

import (
	"errors"
	"hotel_manager/database"
	"hotel_manager/helper"
	"hotel_manager/model"
	"hotel_manager/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

func GetRoomCategories(c *fiber.Ctx) error {
	var categories []model.RoomCategory
	if err := database.DB.Order("base_rate").Find(&categories).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi tải hạng phòng", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, categories)
}

func GetRoomCategoryById(c *fiber.Ctx) error {
	categoryId := c.Locals("inputId").(int)

	var category model.RoomCategory
	if err := database.DB.Preload("Rooms").First(&category, categoryId).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Không tìm thấy hạng phòng", err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi tải hạng phòng", err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, category)
}

func CreateRoomCategory(c *fiber.Ctx) error {
	input := c.Locals("input").(model.CreateRoomCategoryInput)

	var category model.RoomCategory
	if err := copier.Copy(&category, &input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Lỗi hệ thống", err)
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		category.Slug = helper.GenerateUniqueCategorySlug(tx, input.Name)
		return tx.Create(&category).Error
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Tạo hạng phòng thất bại", err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, category)
}

func EditRoomCategory(c *fiber.Ctx) error {
	categoryId := c.Locals("inputId").(int)
	input := c.Locals("input").(model.EditRoomCategoryInput)

	var category model.RoomCategory
	if err := database.DB.First(&category, categoryId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Không tìm thấy hạng phòng", err)
	}

	updates := map[string]any{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.BaseRate != nil {
		// Đổi giá chỉ ảnh hưởng đặt phòng mới; đặt phòng đã chốt giữ nguyên giá
		updates["base_rate"] = *input.BaseRate
	}
	if input.MaxOccupancy != nil {
		updates["max_occupancy"] = *input.MaxOccupancy
	}

	if len(updates) > 0 {
		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if input.Name != nil && *input.Name != category.Name {
				updates["slug"] = helper.GenerateUniqueCategorySlug(tx, *input.Name)
			}
			return tx.Model(&category).Updates(updates).Error
		})
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Cập nhật hạng phòng thất bại", err)
		}
	}

	return utils.SuccessResponse(c, fiber.StatusOK, category)
}

func DeleteRoomCategory(c *fiber.Ctx) error {
	input := c.Locals("deleteIds").(model.ArrayId)

	var count int64
	database.DB.Model(&model.Room{}).Where("category_id IN ?", input.IDs).Count(&count)
	if count > 0 {
		return utils.ErrorResponse(c, fiber.StatusConflict, "Hạng phòng còn phòng tham chiếu, không thể xoá", nil)
	}

	if err := database.DB.Delete(&model.RoomCategory{}, input.IDs).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Xoá hạng phòng thất bại", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Đã xoá hạng phòng")
}
