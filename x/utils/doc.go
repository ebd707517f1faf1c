/*
Package utils contains decorators shared by every transaction: panic
recovery, logging, savepoints and action tags.
*/
package utils
