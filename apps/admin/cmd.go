package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"github.com/go-playground/validator/v10"
	"golang.org/x/term"

	"github.com/codewithmesree/saiu-learnflow/core/user"
)

var (
	readPasswordFunc = term.ReadPassword // mockable
	readLineFunc     = readLine          // mockable

	errHelp     = errors.New("help provided")
	errAborted  = errors.New("aborted")
	errNoSQLRun = errors.New("migrations only apply to the sqlite3 and postgres storage drivers")
)

type migrator interface {
	Migrate(command string, args ...string) error
}

type commandLine struct {
	store    interface{} // the opened storage backend; may be a migrator
	usrSvc   *user.Service
	validate *validator.Validate
	out      io.Writer
}

func readLine() (string, error) {
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (cli *commandLine) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(cli.out, format, args...)
}

func (cli *commandLine) printUsage() {
	cli.printf("Usage:\n")
	cli.printf("  seed - create the demo professor and student accounts\n")
	cli.printf("  adduser -email EMAIL -name NAME -role admin|professor|student [-department DEPT] - create a user\n")
	cli.printf("  resetpassword -email EMAIL - reset user's password\n")
	cli.printf("  listusers [-role ROLE] [-search QUERY] - list users\n")
	cli.printf("  cleardata [-yes] - delete all users and sessions\n")
	cli.printf("  migrate COMMAND [ARGS] - run a goose migration command (sql drivers only)\n")
}

// promptPassword reads a password without echoing it.
func (cli *commandLine) promptPassword() (string, error) {
	cli.printf("Enter password:")
	pwd, err := readPasswordFunc(int(syscall.Stdin))
	cli.printf("\n")
	if err != nil {
		return "", err
	}
	return string(pwd), nil
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addUserCmd := flag.NewFlagSet("adduser", flag.ExitOnError)
	addUserEmail := addUserCmd.String("email", "", "The user's email. The password will be prompted next.")
	addUserName := addUserCmd.String("name", "", "The user's full name.")
	addUserRole := addUserCmd.String("role", "", "One of admin, professor or student.")
	addUserDept := addUserCmd.String("department", "", "The user's department.")

	resetPasswordCmd := flag.NewFlagSet("resetpassword", flag.ExitOnError)
	resetPasswordEmail := resetPasswordCmd.String("email", "", "The user's email. The password will be prompted next.")

	listUsersCmd := flag.NewFlagSet("listusers", flag.ExitOnError)
	listUsersRole := listUsersCmd.String("role", "", "Only list users with this role.")
	listUsersSearch := listUsersCmd.String("search", "", "Only list users whose name, email or department contains this.")

	clearDataCmd := flag.NewFlagSet("cleardata", flag.ExitOnError)
	clearDataYes := clearDataCmd.Bool("yes", false, "Do not ask for confirmation.")

	switch args[1] {
	case "seed":
		return cli.seed()

	case "adduser":
		if err := addUserCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addUserEmail == "" || *addUserName == "" || *addUserRole == "" {
			addUserCmd.Usage()
			return errHelp
		}
		pwd, err := cli.promptPassword()
		if err != nil {
			return err
		}
		if pwd == "" {
			addUserCmd.Usage()
			return errHelp
		}
		return cli.addUser(*addUserEmail, *addUserName, *addUserRole, *addUserDept, pwd)

	case "resetpassword":
		if err := resetPasswordCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *resetPasswordEmail == "" {
			resetPasswordCmd.Usage()
			return errHelp
		}
		pwd, err := cli.promptPassword()
		if err != nil {
			return err
		}
		if pwd == "" {
			resetPasswordCmd.Usage()
			return errHelp
		}
		return cli.resetPassword(*resetPasswordEmail, pwd)

	case "listusers":
		if err := listUsersCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.listUsers(user.QueryFilter{Role: *listUsersRole, Search: *listUsersSearch})

	case "cleardata":
		if err := clearDataCmd.Parse(args[2:]); err != nil {
			return err
		}
		if !*clearDataYes {
			cli.printf("This deletes every user and session. Type 'yes' to continue: ")
			answer, err := readLineFunc()
			if err != nil {
				return err
			}
			if answer != "yes" {
				return errAborted
			}
		}
		return cli.clearData()

	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])

	default:
		cli.printUsage()
		return errHelp
	}
}
