package main

import (
	"time"

	"github.com/voidarchive/archive/core"
	"github.com/voidarchive/archive/x/image"
	"github.com/voidarchive/archive/x/jwt"
	"github.com/voidarchive/archive/x/util"
)

func provideTokenService(repository jwt.Repository, config util.Config) jwt.Service {
	ttl := time.Duration(config.Auth.SessionTTLHours) * time.Hour
	return jwt.NewService(repository, config.Auth.JWTSecret, ttl)
}

func provideImageRepository(config util.Config) image.Repository {
	return image.NewRepository(config.Server.StoragePath)
}

func provideImageService(repository image.Repository, config util.Config) core.ImageService {
	return image.NewService(repository, config.Server.PublicURL)
}
