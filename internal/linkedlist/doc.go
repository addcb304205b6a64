// Package linkedlist implements a singly linked list over a logical.Manager.
//
// Index 0 of every list holds the HEAD sentinel, a real positioned node whose
// value is "HEAD". Collection order mirrors adjacency order, and the last node
// points at the "TAIL" marker. Each structural edit builds a new node slice,
// commits it to the manager and runs a full relayout.
//
// A List is not safe for concurrent use.
package linkedlist
