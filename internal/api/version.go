// Copyright (c) 2026 Silo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"net/http"

	"github.com/taibuivan/silo/internal/platform/constants"
	"github.com/taibuivan/silo/internal/platform/respond"
)

// versionHandler handles GET /api/v1/version.
//
// It sits on the public-path allow-list so clients can check compatibility
// before logging in.
func versionHandler(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, map[string]string{
		constants.FieldApp:     constants.AppName,
		constants.FieldVersion: constants.AppVersion,
	})
}
