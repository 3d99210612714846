package controllers

import (
	"encoding/json"

	"gorm.io/datatypes"
)

func appendGalleryImage(list *datatypes.JSON, path string) {
	var images []string
	if len(*list) > 0 {
		_ = json.Unmarshal(*list, &images)
	}
	images = append(images, path)
	b, _ := json.Marshal(images)
	*list = datatypes.JSON(b)
}
