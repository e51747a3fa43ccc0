// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Server Configuration

	cfg, err := cliparse.ParseFlags(os.Args[1:])

  - Port: Server listen port (default: 3318)
  - DatabaseType: sqlite, postgres or firestore (default: sqlite)
  - DatabaseURL: connection string (required unless firestore)
  - VoterKeySalt: secret for hashing anonymous voter addresses (required)
  - FirebaseProjectID / FirebaseCredentialsFile: firestore only

CLI flags and their environment fallbacks:

	-p                PORT
	-t                DATABASE_TYPE
	-d                DATABASE_URL
	-voter-salt       VOTER_KEY_SALT
	-firebase-project FIREBASE_PROJECT_ID
	-firebase-creds   FIREBASE_CREDENTIALS_FILE

# Viewer Configuration

	cfg, err := cliparse.ParseClientFlags(os.Args[1:])

	-server   POLLY_SERVER_URL (default http://localhost:3318)
	-token    POLLY_TOKEN
	-timeout  POLLY_TIMEOUT (default 10s)
	-log      POLLY_LOG_FILE

Positional arguments are returned in ClientConfig.Args.

# Precedence

CLI flags take precedence over environment variables. A .env file in the
working directory is loaded first and never overrides variables that are
already set.
*/
package cliparse
