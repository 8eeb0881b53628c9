//go:build wireinject

package main

import (
	"github.com/bradfitz/gomemcache/memcache"
	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/voidarchive/archive/core"
	"github.com/voidarchive/archive/x/archivelog"
	"github.com/voidarchive/archive/x/auth"
	"github.com/voidarchive/archive/x/character"
	"github.com/voidarchive/archive/x/comment"
	"github.com/voidarchive/archive/x/jwt"
	"github.com/voidarchive/archive/x/profile"
	"github.com/voidarchive/archive/x/util"
)

var authServiceProvider = wire.NewSet(auth.NewService, auth.NewRepository, jwt.NewRepository, provideTokenService)
var characterServiceProvider = wire.NewSet(character.NewService, character.NewRepository)
var logServiceProvider = wire.NewSet(archivelog.NewService, archivelog.NewRepository)
var commentServiceProvider = wire.NewSet(comment.NewService, comment.NewRepository)
var profileServiceProvider = wire.NewSet(profile.NewService, profile.NewRepository)
var imageServiceProvider = wire.NewSet(provideImageService, provideImageRepository)

func SetupAuthService(db *gorm.DB, rdb *redis.Client, config util.Config) auth.Service {
	wire.Build(authServiceProvider)
	return nil
}

func SetupCharacterService(db *gorm.DB, mc *memcache.Client, authService core.AuthService) core.CharacterService {
	wire.Build(characterServiceProvider)
	return nil
}

func SetupLogService(db *gorm.DB, mc *memcache.Client, authService core.AuthService) core.LogService {
	wire.Build(logServiceProvider)
	return nil
}

func SetupCommentService(db *gorm.DB, mc *memcache.Client, authService core.AuthService) core.CommentService {
	wire.Build(commentServiceProvider)
	return nil
}

func SetupProfileService(db *gorm.DB, mc *memcache.Client, authService core.AuthService) core.ProfileService {
	wire.Build(profileServiceProvider)
	return nil
}

func SetupImageService(config util.Config) core.ImageService {
	wire.Build(imageServiceProvider)
	return nil
}
