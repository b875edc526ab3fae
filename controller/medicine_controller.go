package controller

import (
	"encoding/json"
	"fmt"
	"log"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/rintud72/medicine-shop-backend/cache"
	"github.com/rintud72/medicine-shop-backend/kafka"
	"github.com/rintud72/medicine-shop-backend/model"
	"github.com/rintud72/medicine-shop-backend/search"
)

const medicineListCacheKey = "medicines:all"

type MedicineController struct {
	DB        *gorm.DB
	Search    *search.ElasticClient
	Producer  *kafka.Producer
	UploadDir string
}

type medicineInput struct {
	Name  string  `json:"name" form:"name"`
	Desc  string  `json:"desc" form:"desc"`
	Price float64 `json:"price" form:"price"`
	Stock int     `json:"stock" form:"stock"`
}

func (mc *MedicineController) List(c *fiber.Ctx) error {
	if cache.Redis != nil {
		if cached, err := cache.Redis.Get(cache.Ctx, medicineListCacheKey).Result(); err == nil {
			var medicines []model.Medicine
			if json.Unmarshal([]byte(cached), &medicines) == nil {
				return c.JSON(medicines)
			}
		}
	}

	var medicines []model.Medicine
	if err := mc.DB.Order("created_at desc").Find(&medicines).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "error fetching medicines"})
	}

	if cache.Redis != nil {
		if b, err := json.Marshal(medicines); err == nil {
			cache.Redis.Set(cache.Ctx, medicineListCacheKey, b, 5*time.Minute)
		}
	}

	return c.JSON(medicines)
}

func (mc *MedicineController) Get(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "invalid id"})
	}

	var medicine model.Medicine
	if err := mc.DB.First(&medicine, id).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"message": "medicine not found"})
	}

	return c.JSON(medicine)
}

func (mc *MedicineController) SearchIndex(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return c.Status(400).JSON(fiber.Map{"message": "query parameter q is required"})
	}
	if mc.Search == nil {
		return c.Status(503).JSON(fiber.Map{"message": "search not available"})
	}

	results, err := mc.Search.SearchMedicines(query, c.Query("min_price"), c.Query("max_price"))
	if err != nil {
		log.Printf("Error searching medicines: %v", err)
		return c.Status(500).JSON(fiber.Map{"message": "error searching medicines"})
	}

	return c.JSON(results)
}

func (mc *MedicineController) Create(c *fiber.Ctx) error {
	var in medicineInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "invalid payload"})
	}
	if in.Name == "" {
		return c.Status(400).JSON(fiber.Map{"message": "name is required"})
	}
	if in.Price < 0 || in.Stock < 0 {
		return c.Status(400).JSON(fiber.Map{"message": "price and stock must not be negative"})
	}

	medicine := model.Medicine{
		Name:      in.Name,
		Desc:      in.Desc,
		Price:     in.Price,
		Stock:     in.Stock,
		CreatedAt: time.Now(),
	}

	if image, err := mc.saveImage(c); err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "error saving image"})
	} else if image != "" {
		medicine.Image = image
	}

	if err := mc.DB.Create(&medicine).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "error creating medicine"})
	}

	mc.afterWrite(&medicine)
	return c.Status(201).JSON(medicine)
}

func (mc *MedicineController) Update(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "invalid id"})
	}

	var medicine model.Medicine
	if err := mc.DB.First(&medicine, id).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"message": "medicine not found"})
	}

	var in medicineInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "invalid payload"})
	}
	if in.Price < 0 || in.Stock < 0 {
		return c.Status(400).JSON(fiber.Map{"message": "price and stock must not be negative"})
	}

	medicine.Name = in.Name
	medicine.Desc = in.Desc
	medicine.Price = in.Price
	medicine.Stock = in.Stock

	if image, err := mc.saveImage(c); err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "error saving image"})
	} else if image != "" {
		medicine.Image = image
	}

	if err := mc.DB.Save(&medicine).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "error updating medicine"})
	}

	mc.afterWrite(&medicine)
	return c.JSON(medicine)
}

func (mc *MedicineController) Delete(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"message": "invalid id"})
	}

	var medicine model.Medicine
	if err := mc.DB.First(&medicine, id).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{"message": "medicine not found"})
	}
	if err := mc.DB.Delete(&medicine).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{"message": "error deleting medicine"})
	}

	if cache.Redis != nil {
		cache.Redis.Del(cache.Ctx, medicineListCacheKey)
	}
	if err := mc.Search.DeleteMedicine(strconv.FormatUint(uint64(medicine.ID), 10)); err != nil {
		log.Printf("Error removing medicine %d from index: %v", medicine.ID, err)
	}

	return c.SendStatus(204)
}

// saveImage stores an uploaded image file under the uploads dir and returns
// its public path. No file in the request is not an error.
func (mc *MedicineController) saveImage(c *fiber.Ctx) (string, error) {
	file, err := c.FormFile("image")
	if err != nil || file == nil {
		return "", nil
	}

	name := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), filepath.Base(file.Filename))
	if err := c.SaveFile(file, filepath.Join(mc.UploadDir, name)); err != nil {
		return "", err
	}
	return "/uploads/" + name, nil
}

func (mc *MedicineController) afterWrite(medicine *model.Medicine) {
	if cache.Redis != nil {
		cache.Redis.Del(cache.Ctx, medicineListCacheKey)
	}

	doc := map[string]interface{}{
		"id":    medicine.ID,
		"name":  medicine.Name,
		"desc":  medicine.Desc,
		"price": medicine.Price,
		"stock": medicine.Stock,
		"image": medicine.Image,
	}
	if err := mc.Search.IndexMedicine(doc); err != nil {
		log.Printf("Error indexing medicine %d: %v", medicine.ID, err)
	}

	mc.Producer.PublishMedicineUpsertedEvent(map[string]interface{}{
		"event_type": "medicine.upserted",
		"data":       doc,
	})
}
