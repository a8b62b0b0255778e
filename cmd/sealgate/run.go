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

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	goruntime "runtime"
	"syscall"

	"github.com/sealgate/sealgate/pkg/authn/pipeline"
	"github.com/sealgate/sealgate/pkg/authn/submodule"
	"github.com/sealgate/sealgate/pkg/authn/submodule/registry"
	"github.com/sealgate/sealgate/pkg/config"
	"github.com/sealgate/sealgate/pkg/directory"
	"github.com/sealgate/sealgate/pkg/engine/local"
	"github.com/sealgate/sealgate/pkg/observability/logging"
	"github.com/sealgate/sealgate/pkg/observability/logging/logger"
	"github.com/sealgate/sealgate/pkg/observability/metrics"
	"github.com/sealgate/sealgate/pkg/resolver"
	"github.com/sealgate/sealgate/pkg/routing"
	"github.com/sealgate/sealgate/pkg/runtime"
	"github.com/sealgate/sealgate/pkg/sealer"
	"github.com/sealgate/sealgate/pkg/templates"
)

func run(args []string) error {
	conf, flags, err := config.Load(applicationName, applicationVersion, args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", applicationName, err)
		return err
	}
	if flags.PrintVersion {
		printVersion()
		return nil
	}

	log := logging.New(conf.Logging, conf.Main.InstanceID)
	logger.SetLogger(log)
	defer log.Close()

	var sl sealer.Sealer
	if string(conf.SSO.KeyFile) != "" {
		sl, err = sealer.NewFromFile(string(conf.SSO.KeyFile))
	} else {
		sl, err = sealer.New([]byte(conf.SSO.Secret))
	}
	if err != nil {
		logger.Error("unable to initialize the sealer",
			logging.Pairs{"detail": err.Error()})
		return err
	}

	te, err := templates.NewFromDir(conf.SSO.TemplatesDir)
	if err != nil {
		logger.Error("unable to load page templates",
			logging.Pairs{"detail": err.Error()})
		return err
	}

	eng := local.New(conf.Engine, te)

	deps := &submodule.Deps{
		Templates: te,
		Engine:    eng,
	}
	if conf.Resolver != nil {
		deps.Resolver = &resolver.StaticResolver{
			Attributes: conf.Resolver.Attributes}
	}
	if conf.Directory != nil {
		users := make(map[string]string, len(conf.Directory.Users))
		for k, v := range conf.Directory.Users {
			users[k] = string(v)
		}
		deps.Directory = &directory.StaticValidator{
			Users:              users,
			Method:             conf.Directory.Method,
			UnknownUserMessage: conf.Directory.UnknownUserMessage,
			BadPasswordMessage: conf.Directory.BadPasswordMessage,
		}
	}

	chain := make([]pipeline.Entry, 0, len(conf.SSO.Submodules))
	for _, name := range conf.SSO.Submodules {
		sm, err := registry.New(conf.Submodules[name], deps)
		if err != nil {
			logger.Error("unable to construct submodule",
				logging.Pairs{"submodule": name, "detail": err.Error()})
			return err
		}
		chain = append(chain, pipeline.Entry{Name: name, Submodule: sm})
	}

	p, err := pipeline.New(&pipeline.Config{
		Sealer:     sl,
		Engine:     eng,
		Templates:  te,
		Chain:      chain,
		CookieName: conf.SSO.CookieName,
		CookiePath: conf.SSO.Path,
		Lifetime:   conf.SSO.Lifetime,
		Exclusions: conf.SSO.Exclusions(),
	})
	if err != nil {
		logger.Error("unable to construct the login pipeline",
			logging.Pairs{"detail": err.Error()})
		return err
	}

	metrics.BuildInfo.WithLabelValues(goruntime.Version(),
		runtime.GitCommitID, applicationVersion).Set(1)
	if conf.Metrics.ListenPort > 0 {
		go func() {
			if err := metrics.ListenAndServe(conf.Metrics.ListenAddress,
				conf.Metrics.ListenPort); err != nil {
				logger.Error("metrics listener failed",
					logging.Pairs{"detail": err.Error()})
			}
		}()
		logger.Info("metrics endpoint starting",
			logging.Pairs{"address": conf.Metrics.ListenAddress,
				"port": conf.Metrics.ListenPort})
	}

	server := &http.Server{
		Addr: fmt.Sprintf("%s:%d", conf.Frontend.ListenAddress,
			conf.Frontend.ListenPort),
		Handler:           routing.NewRouter(conf, p),
		ReadHeaderTimeout: conf.Frontend.ReadHeaderTimeout,
	}

	idle := make(chan struct{})
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		s := <-sig
		logger.Info("shutting down", logging.Pairs{"signal": s.String()})
		ctx, cancel := context.WithTimeout(context.Background(),
			conf.Frontend.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("shutdown did not complete cleanly",
				logging.Pairs{"detail": err.Error()})
		}
		close(idle)
	}()

	logger.Info("frontend listening",
		logging.Pairs{"address": conf.Frontend.ListenAddress,
			"port": conf.Frontend.ListenPort,
			"tls":  conf.Frontend.ServeTLS()})
	if conf.Frontend.ServeTLS() {
		err = server.ListenAndServeTLS(conf.Frontend.TLSCertPath,
			conf.Frontend.TLSKeyPath)
	} else {
		err = server.ListenAndServe()
	}
	if err != nil && err != http.ErrServerClosed {
		logger.Error("frontend listener failed",
			logging.Pairs{"detail": err.Error()})
		return err
	}
	<-idle
	return nil
}

func printVersion() {
	fmt.Println(runtime.Version(goruntime.Version()))
}
