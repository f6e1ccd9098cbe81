// File: cmd/service/main.go
// @title        Todo App API
// @version      1.0
// @description  多使用者待辦事項服務的後端 API 文件
// @host         localhost:8080
// @BasePath     /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
package main

import (
	log "github.com/sirupsen/logrus"
)

func main() {
	if err := run(); err != nil {
		log.Error(err)
		exitFunc(1)
	}
}
