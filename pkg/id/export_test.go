package id

var EncodeULID = encodeULID
