package main // adminhash prints a bcrypt hash for ADMIN_PASSWORD_HASH

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/fyyur-trivia/internal/utils"
)

func main() {
	cost := flag.Int("cost", bcrypt.DefaultCost, "bcrypt cost")
	flag.Parse()

	password := flag.Arg(0)
	if password == "" {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			log.Fatal("usage: adminhash [-cost n] <password>  (or pipe it on stdin)")
		}
		password = strings.TrimRight(line, "\r\n")
	}

	hash, err := utils.HashPassword(password, *cost)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(hash)
}
