package utils

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/senyabanana/rfq-desk/internal/models"
)

// SendErrorResponse отправляет ошибку в формате JSON
func SendErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	errorResponse := models.ErrorResponse{
		StatusCode: statusCode,
		Message:    message,
	}
	if err := json.NewEncoder(w).Encode(errorResponse); err != nil {
		log.Println(err)
	}
}

// SendJSON отправляет ответ в формате JSON
func SendJSON(w http.ResponseWriter, statusCode int, body interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(body)
}

// ParseLimitOffset обрабатывает limit и offset
func ParseLimitOffset(limitStr, offsetStr string) (int, int, error) {
	var limit, offset int
	var err error

	if limitStr != "" {
		limit, err = strconv.Atoi(limitStr)
		if err != nil || limit <= 0 || limit > 50 {
			return 0, 0, fmt.Errorf("invalid limit parameter, must be a positive integer [0:50]")
		}
	} else {
		limit = 5
	}

	if offsetStr != "" {
		offset, err = strconv.Atoi(offsetStr)
		if err != nil || offset < 0 {
			return 0, 0, fmt.Errorf("invalid offset parameter, must be a non-negative integer")
		}
	} else {
		offset = 0
	}

	return limit, offset, nil
}

// SplitQueryValues собирает значения параметра, переданные повторно или через запятую
func SplitQueryValues(values []string) []string {
	var result []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				result = append(result, part)
			}
		}
	}
	return result
}
