package dashboard

// Version is the release of the wizard engine and its CLI.
const Version = "0.4.0"
