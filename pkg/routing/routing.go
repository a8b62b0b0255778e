/*
 * Copyright 2024 The Sealgate Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package routing is the Router Registration Layer for the application
package routing

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/sealgate/sealgate/pkg/config"
	"github.com/sealgate/sealgate/pkg/observability/logging"
	"github.com/sealgate/sealgate/pkg/observability/logging/logger"
	"github.com/sealgate/sealgate/pkg/runtime"
)

// NewRouter returns the application router with the login pipeline and the
// operational handlers registered
func NewRouter(conf *config.Config, pipeline http.Handler) *mux.Router {
	router := mux.NewRouter()
	if conf.Main != nil && conf.Main.PingHandlerPath != "" {
		router.HandleFunc(conf.Main.PingHandlerPath,
			pingHandler).Methods(http.MethodGet)
		logger.Debug("registered ping handler",
			logging.Pairs{"path": conf.Main.PingHandlerPath})
	}
	router.Handle(conf.SSO.Path, pipeline).
		Methods(http.MethodGet, http.MethodPost)
	logger.Info("registered login pipeline handler",
		logging.Pairs{"path": conf.SSO.Path})
	return router
}

func pingHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write([]byte(runtime.ApplicationName + " is running"))
}
