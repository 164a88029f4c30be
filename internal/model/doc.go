package model

// Package model defines the data structures shared by the workflow and its
// front ends: download requests, resolved video and stream metadata, the
// per-run state machine, and the confirmation prompt shown to the user.
