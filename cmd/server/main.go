package main

import "bizadmin/internal/app/server"

func main() {
	server.Run()
}
