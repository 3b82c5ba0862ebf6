package controllers

import (
	"net/http"

	"github.com/angelmondragon/pharmacy-pos-backend/api/responses"
)

const rootBanner = "Pharmacy POS Backend is running!"

// Root answers the liveness banner served at "/".
func Root() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteText(w, http.StatusOK, rootBanner)
	}
}
