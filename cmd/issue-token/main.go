package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mmdatafocus/workshop_backend/utils"
)

func main() {
	id := flag.Int("id", 0, "Required: operator id")
	role := flag.String("role", utils.RoleOperator, "Role: operator or viewer")
	flag.Parse()

	if *id <= 0 {
		fmt.Fprintln(os.Stderr, "--id is required")
		os.Exit(1)
	}
	if *role != utils.RoleOperator && *role != utils.RoleViewer {
		fmt.Fprintf(os.Stderr, "unknown role %q\n", *role)
		os.Exit(1)
	}

	token, err := utils.JwtGenerate(*id, *role)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generate token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}
